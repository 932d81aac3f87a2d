package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradechat/cmd/export"
	"tradechat/src/database"
	"tradechat/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "TradeChat CMD"
	app.Usage = "The TradeChat command line interface"

	app.Commands = []cli.Command{
		serverCMD,
		exportCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serverCMD = cli.Command{
		Name:        "server",
		Usage:       "run the chat and reporting API server",
		Action:      serverAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the HTTP server`,
	}
	exportCMD = cli.Command{
		Name:      "export",
		Usage:     "export a trade report window as CSV",
		Action:    exportAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "period",
				Usage: "report window: daily, weekly, monthly or today",
				Value: "daily",
			},
			cli.StringFlag{
				Name:  "out",
				Usage: "output directory for the CSV file",
				Value: ".",
			},
		},
		Description: `Write {period}_trade_report.csv to disk`,
	}
)

func serverAction(_ *cli.Context) error {
	logrus.Info("Starting server CMD")

	if err := database.Probe(); err != nil {
		logrus.WithError(err).Warn("Trade-log store unreachable at startup")
	}

	server.StartServer(server.GetConfig())
	return nil
}

func exportAction(c *cli.Context) error {
	logrus.Info("Starting export CMD")

	exporter := &export.Exporter{
		Period: c.String("period"),
		OutDir: c.String("out"),
	}
	if err := exporter.Start(); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
