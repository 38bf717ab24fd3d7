package dto

// InquirePriceResponse is the domestic single-price response (tr FHKST01010100).
type InquirePriceResponse struct {
	Header
	Output DomesticPrice `json:"output"`
}

// DomesticPrice is the payload of a domestic single-price quote.
type DomesticPrice struct {
	StockCode  string `json:"stck_shrn_iscd"` // 종목코드
	Price      string `json:"stck_prpr"`      // 현재가
	ChangeRate string `json:"prdy_ctrt"`      // 전일대비율 (%)
	Volume     string `json:"acml_vol"`       // 누적거래량
}

// MultiPriceResponse is the domestic multi-price response (tr FHKST11300006).
type MultiPriceResponse struct {
	Header
	Output []MultiPrice `json:"output"`
}

// MultiPrice is one row of a domestic multi-price quote.
type MultiPrice struct {
	StockCode  string `json:"inter_shrn_iscd"` // 종목코드
	Name       string `json:"inter_kor_isnm"`  // 종목명
	Price      string `json:"inter2_prpr"`     // 현재가
	ChangeRate string `json:"prdy_ctrt"`       // 전일대비율 (%)
	Volume     string `json:"acml_vol"`        // 누적거래량
}
