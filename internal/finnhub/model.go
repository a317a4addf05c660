package finnhub

// QuoteResponse is the raw /quote endpoint response.
// https://finnhub.io/docs/api/quote
type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// streamCommand is a subscribe/unsubscribe message on the trade socket.
type streamCommand struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
}

// streamMessage is any message received on the trade socket.
type streamMessage struct {
	Type string        `json:"type"`
	Data []streamTrade `json:"data"`
	Msg  string        `json:"msg"`
}

// streamTrade is one trade in a "trade" stream message.
type streamTrade struct {
	Symbol    string  `json:"s"`
	Price     float64 `json:"p"`
	Timestamp int64   `json:"t"`
	Volume    float64 `json:"v"`
}
