package packets

import (
	"encoding/base64"
	"fmt"
)

// TXPK describes a single packet the gateway is asked to transmit, carried
// inside a PULL_RESP frame.
type TXPK struct {
	Imme bool    `json:"imme"`
	Tmst uint32  `json:"tmst,omitempty"`
	Time *string `json:"time,omitempty"`
	Freq float64 `json:"freq"`
	RFCh uint8   `json:"rfch"`
	Powe int8    `json:"powe"`
	Modu string  `json:"modu"`
	DatR string  `json:"datr"`
	CodR string  `json:"codr"`
	FDev uint16  `json:"fdev,omitempty"`
	IPol bool    `json:"ipol"`
	Prea uint16  `json:"prea,omitempty"`
	Size uint16  `json:"size"`
	Data string  `json:"data"`
	NCRC bool    `json:"ncrc,omitempty"`
}

// NewTXPK builds a TXPK from a PHYPayload, frequency (Hz), data-rate string,
// coding-rate string and scheduled concentrator timestamp.
func NewTXPK(phyPayload []byte, freqHz uint32, datr, codr string, tmst uint32, power int8) TXPK {
	return TXPK{
		Tmst: tmst,
		Freq: float64(freqHz) / 1000000,
		RFCh: 0,
		Powe: power,
		Modu: "LORA",
		DatR: datr,
		CodR: codr,
		IPol: true,
		Size: uint16(len(phyPayload)),
		Data: base64.StdEncoding.EncodeToString(phyPayload),
	}
}

// PHYPayload base64-decodes the Data field.
func (t TXPK) PHYPayload() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(t.Data)
	if err != nil {
		return nil, fmt.Errorf("txpk: decode payload: %w", err)
	}
	return b, nil
}
