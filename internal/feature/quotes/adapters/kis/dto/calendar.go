package dto

// HolidayResponse is the domestic market calendar response (tr CTCA0903R).
type HolidayResponse struct {
	Header
	Output []CalendarDay `json:"output"`
}

// CalendarDay is one day of the market calendar.
type CalendarDay struct {
	Date       string `json:"bass_dt"`     // 기준일자 (YYYYMMDD)
	WeekdayCd  string `json:"wday_dvsn_cd"` // 요일구분코드
	BizDayYn   string `json:"bzdy_yn"`     // 영업일여부 (Y/N)
	TradeDayYn string `json:"tr_day_yn"`   // 거래일여부 (Y/N)
	OpenYn     string `json:"opnd_yn"`     // 개장일여부 (Y/N)
}
