/*
Package server exposes prefix indices over msgpack IPC and HTTP.

# IPC

Clients write msgpack maps to stdin and read msgpack maps from stdout.
Once started the server announces itself with:

	{"status": "ready"}

A request without an action is a completion request. "i" picks the index
and defaults to the first one loaded:

	{"id": "req_001", "p": "ame", "l": 5, "i": "tst"}

Suggestions come back ranked from 1, with frequencies and the time taken in
microseconds:

	{"id": "req_001", "s": [{"w": "america", "f": 812, "r": 1}], "c": 1, "t": 14}

The "stats" and "health" actions report index statistics and liveness:

	{"id": "s1", "action": "stats"}
	{"id": "h1", "action": "health"}

Failures carry an HTTP like code:

	{"id": "req_002", "e": "unknown index \"radix\"", "c": 404}

# HTTP

GET /autocomplete?query=pro&index=tst&limit=5 answers with a JSON array of
words. /stats and /health mirror the IPC actions.
*/
package server

// Request is any message read by the IPC server.
type Request struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Index  string `msgpack:"i,omitempty"`
	Action string `msgpack:"action,omitempty"`
}

// CompletionSuggestion is one ranked word.
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Frequency int    `msgpack:"f"`
	Rank      uint16 `msgpack:"r"`
}

// CompletionResponse answers a completion request.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty" json:"id,omitempty"`
	Status string `msgpack:"status" json:"status"`
}

// StatsResponse carries the statistics of every loaded index.
type StatsResponse struct {
	ID      string                    `msgpack:"id"`
	Status  string                    `msgpack:"status"`
	Indices map[string]map[string]int `msgpack:"indices"`
}

// CompletionError holds basic error information for failed requests.
type CompletionError struct {
	ID    string `msgpack:"id" json:"id,omitempty"`
	Error string `msgpack:"e" json:"error"`
	Code  int    `msgpack:"c" json:"code"`
}

const (
	actionStats  = "stats"
	actionHealth = "health"

	defaultLimit = 10
)
