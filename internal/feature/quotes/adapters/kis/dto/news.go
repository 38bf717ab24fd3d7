package dto

// NewsResponse is the overseas news title response (tr HHPSTH60100C1).
type NewsResponse struct {
	Header
	Output []NewsRow `json:"outblock1"`
}

// NewsRow is one overseas news headline.
type NewsRow struct {
	Symbol string `json:"symb"`    // 종목코드
	Title  string `json:"titl"`    // 제목
	Date   string `json:"data_dt"` // 작성일 (YYYYMMDD)
	Time   string `json:"data_tm"` // 작성시간 (HHMMSS)
	Source string `json:"source"`  // 출처
}
