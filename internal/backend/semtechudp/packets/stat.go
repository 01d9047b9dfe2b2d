package packets

// Stat is the gateway status object reported inside a PUSH_DATA frame's
// "stat" object.
type Stat struct {
	Time string  `json:"time"`
	Lati float64 `json:"lati,omitempty"`
	Long float64 `json:"long,omitempty"`
	Alti int32   `json:"alti,omitempty"`
	RXNb uint32  `json:"rxnb"`
	RXOK uint32  `json:"rxok"`
	RXFW uint32  `json:"rxfw"`
	ACKR float64 `json:"ackr"`
	DWNb uint32  `json:"dwnb"`
	TXNb uint32  `json:"txnb"`
}
