package handler

// Fixed prompts and canned responses used by the chat pipeline.

// relayTemperature makes the wrapping model pass a near-identity transform
// for deterministic branches.
const relayTemperature = 0.0

const personaSystemPrompt = `You are the DTCC Post-Trade Processing assistant, a friendly AI helping internal operations staff. When a user greets you (e.g. "Hey", "Hi", "Hello"), respond with a friendly greeting and offer help with trade statuses and processing reports. Do not provide information about unrelated products or services unless the user asks specifically.`

const domainSystemPrompt = `You are the DTCC Post-Trade Processing assistant. The user asked about trade processing data and the platform has already assembled the facts below. Present them to the user faithfully. You may add brief interpretive commentary, but never alter status codes, counts, identifiers, or timestamps.`

const relaySystemPrompt = `Relay the following content to the user exactly as provided. Do not add, remove, summarize, or rephrase anything.`

const offTopicRefusal = `I'm the DTCC Post-Trade Processing assistant, so I can't help with that topic. I can help you with trade statuses (for example "show tid00000553"), processing reports ("generate weekly report"), or a status summary of today's trades.`

const fetchFailureMessage = `⚠️ **Unable to retrieve trade data right now.**

Likely causes:
- The trade-log database is unreachable or restarting.
- The database credentials or connection settings have changed.

Next steps:
- Try again in a few minutes.
- Check the /api/test-db diagnostics endpoint.
- If the problem persists, contact the Post-Trade IT team (posttrade-support@dtcc.com).`

const apologyMessage = `I'm sorry — something went wrong while processing your request. Please try again, and contact the Post-Trade IT team if the problem persists.`
