package dto

// OverseasPriceResponse is the overseas price response (tr HHDFS00000300).
type OverseasPriceResponse struct {
	Header
	Output OverseasPrice `json:"output"`
}

// OverseasPrice is the payload of an overseas price quote.
type OverseasPrice struct {
	RSym       string `json:"rsym"` // 실시간조회심볼 (e.g. DNASAAPL)
	Last       string `json:"last"` // 현재가
	ChangeRate string `json:"rate"` // 등락율 (%)
	Volume     string `json:"tvol"` // 거래량
}

// OverseasRankingResponse is shared by the overseas fluctuation (updown-rate,
// tr HHDFS76290000) and volume (trade-vol, tr HHDFS76310010) rankings.
type OverseasRankingResponse struct {
	Header
	Output []OverseasRanked `json:"output2"`
}

// OverseasRanked is one row of an overseas ranking.
type OverseasRanked struct {
	Symbol     string `json:"symb"` // 종목코드
	Name       string `json:"name"` // 종목명
	Last       string `json:"last"` // 현재가
	ChangeRate string `json:"rate"` // 등락율 (%)
	Volume     string `json:"tvol"` // 거래량
}
