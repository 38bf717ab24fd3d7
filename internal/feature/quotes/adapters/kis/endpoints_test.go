package kis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invest_backend/internal/feature/quotes/domain/entity"
)

func TestClient_GetOverseasPrice_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("EXCD"); got != "NAS" {
			t.Errorf("expected EXCD NAS, got %q", got)
		}
		if got := r.URL.Query().Get("SYMB"); got != "AAPL" {
			t.Errorf("expected SYMB AAPL, got %q", got)
		}
		if got := r.Header.Get("tr_id"); got != "HHDFS00000300" {
			t.Errorf("expected tr_id HHDFS00000300, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output": {"rsym": "DNASAAPL", "last": "231.5400", "rate": "-0.85", "tvol": "48210345"}
		}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 3)

	quote, err := client.GetOverseasPrice(context.Background(), "AAPL", "NAS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", quote.Symbol)
	}
	if quote.Currency != "USD" {
		t.Errorf("expected currency USD for NAS, got %q", quote.Currency)
	}
	if quote.Price.String() != "231.54" {
		t.Errorf("expected price 231.54, got %s", quote.Price)
	}
}

func TestClient_GetOverseasPrice_CurrencyByExchange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		exchange string
		currency string
	}{
		{"NYS", "USD"},
		{"TSE", "JPY"},
		{"HKS", "HKD"},
		{"SHS", "CNY"},
		{"XXX", "USD"}, // unknown exchanges default to USD
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rt_cd": "0", "output": {"last": "10.0", "rate": "0.0", "tvol": "1"}}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 1)

	for _, tt := range tests {
		quote, err := client.GetOverseasPrice(context.Background(), "SYM", tt.exchange)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.exchange, err)
		}
		if quote.Currency != tt.currency {
			t.Errorf("%s: expected currency %s, got %s", tt.exchange, tt.currency, quote.Currency)
		}
	}
}

func TestClient_GetFluctuationRanking_Domestic(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("tr_id"); got != "FHPST01700000" {
			t.Errorf("expected tr_id FHPST01700000, got %q", got)
		}
		if got := r.URL.Query().Get("fid_rank_sort_cls_code"); got != "1" {
			t.Errorf("expected fall ordering (1), got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output": [
				{"stck_shrn_iscd": "001", "hts_kor_isnm": "가", "stck_prpr": "100", "prdy_ctrt": "-29.90", "acml_vol": "10"},
				{"stck_shrn_iscd": "002", "hts_kor_isnm": "나", "stck_prpr": "200", "prdy_ctrt": "-15.20", "acml_vol": "20"}
			]
		}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 1)

	quotes, err := client.GetFluctuationRanking(context.Background(), entity.MarketDomestic, entity.DirectionFall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("expected 2 ranked quotes, got %d", len(quotes))
	}
	// Upstream ordering is preserved.
	if quotes[0].Symbol != "001" || quotes[1].Symbol != "002" {
		t.Errorf("expected upstream order preserved, got %s, %s", quotes[0].Symbol, quotes[1].Symbol)
	}
	if quotes[0].Name != "가" {
		t.Errorf("expected name carried over, got %q", quotes[0].Name)
	}
}

func TestClient_GetVolumeRanking_Overseas(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("tr_id"); got != "HHDFS76310010" {
			t.Errorf("expected tr_id HHDFS76310010, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output2": [
				{"symb": "TSLA", "name": "Tesla", "last": "410.20", "rate": "3.10", "tvol": "99000000"}
			]
		}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 1)

	quotes, err := client.GetVolumeRanking(context.Background(), entity.MarketOverseas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 ranked quote, got %d", len(quotes))
	}
	if quotes[0].Symbol != "TSLA" || quotes[0].Currency != "USD" {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
}

func TestClient_GetMarketHolidays_FiltersOpenDays(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("tr_id"); got != "CTCA0903R" {
			t.Errorf("expected tr_id CTCA0903R, got %q", got)
		}
		if got := r.URL.Query().Get("BASS_DT"); got != "20260301" {
			t.Errorf("expected BASS_DT 20260301, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"output": [
				{"bass_dt": "20260301", "opnd_yn": "N", "bzdy_yn": "N", "tr_day_yn": "N"},
				{"bass_dt": "20260302", "opnd_yn": "Y", "bzdy_yn": "Y", "tr_day_yn": "Y"},
				{"bass_dt": "20260303", "opnd_yn": "N", "bzdy_yn": "N", "tr_day_yn": "N"},
				{"bass_dt": "20260410", "opnd_yn": "N", "bzdy_yn": "N", "tr_day_yn": "N"}
			]
		}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 1)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	holidays, err := client.GetMarketHolidays(context.Background(), entity.MarketDomestic, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0302 is an open day; 0410 falls outside the requested range.
	if len(holidays) != 2 {
		t.Fatalf("expected 2 holidays, got %d", len(holidays))
	}
	if holidays[0].Format("20060102") != "20260301" || holidays[1].Format("20060102") != "20260303" {
		t.Errorf("unexpected holidays: %v", holidays)
	}
}

func TestClient_GetOverseasNews_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("tr_id"); got != "HHPSTH60100C1" {
			t.Errorf("expected tr_id HHPSTH60100C1, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rt_cd": "0",
			"outblock1": [
				{"symb": "AAPL", "titl": "Apple beats expectations", "data_dt": "20260827", "data_tm": "213000", "source": "DJ"},
				{"symb": "AAPL", "titl": "Broken row", "data_dt": "bad", "data_tm": "??", "source": "DJ"}
			]
		}`))
	}))
	defer server.Close()

	tokens := &fakeTokenSource{tokens: []string{"tok"}}
	client := newTestClient(t, server, tokens, 1)

	items, err := client.GetOverseasNews(context.Background(), "AAPL", "NAS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The unparsable row is skipped, not fatal.
	if len(items) != 1 {
		t.Fatalf("expected 1 news item, got %d", len(items))
	}
	if items[0].Title != "Apple beats expectations" {
		t.Errorf("unexpected title %q", items[0].Title)
	}
	want := time.Date(2026, 8, 27, 21, 30, 0, 0, time.UTC)
	if !items[0].PublishedAt.Equal(want) {
		t.Errorf("expected published at %v, got %v", want, items[0].PublishedAt)
	}
}
