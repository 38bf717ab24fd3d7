package dto

// FluctuationRankingResponse is the domestic fluctuation ranking response
// (tr FHPST01700000).
type FluctuationRankingResponse struct {
	Header
	Output []DomesticRanked `json:"output"`
}

// DomesticRanked is one row of the domestic fluctuation ranking.
type DomesticRanked struct {
	StockCode  string `json:"stck_shrn_iscd"` // 종목코드
	Name       string `json:"hts_kor_isnm"`   // 종목명
	Price      string `json:"stck_prpr"`      // 현재가
	ChangeRate string `json:"prdy_ctrt"`      // 전일대비율 (%)
	Volume     string `json:"acml_vol"`       // 누적거래량
}

// VolumeRankingResponse is the domestic volume ranking response (tr FHPST01710000).
type VolumeRankingResponse struct {
	Header
	Output []VolumeRanked `json:"output"`
}

// VolumeRanked is one row of the domestic volume ranking.
type VolumeRanked struct {
	StockCode  string `json:"mksc_shrn_iscd"` // 종목코드
	Name       string `json:"hts_kor_isnm"`   // 종목명
	Price      string `json:"stck_prpr"`      // 현재가
	ChangeRate string `json:"prdy_ctrt"`      // 전일대비율 (%)
	Volume     string `json:"acml_vol"`       // 누적거래량
}
