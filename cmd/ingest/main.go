// Refreshes the securities master from a CSV export.
// Each row is: code,name,market,exchange (exchange empty for domestic rows).
//
// Usage: ingest <securities.csv>
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"invest_backend/internal/feature/search/adapters"
	"invest_backend/internal/feature/search/domain/entity"
	infradb "invest_backend/internal/platform/db"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: ingest <securities.csv>")
	}

	securities, err := readMaster(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	db := infradb.OpenDB()
	repo := adapters.NewSecurityMySQLRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := repo.ReplaceAll(ctx, securities); err != nil {
		log.Fatal("failed to replace securities master:", err)
	}
	log.Printf("ingest ok: %d securities", len(securities))
}

func readMaster(path string) ([]entity.Security, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	securities := make([]entity.Security, 0, len(rows))
	for i, row := range rows {
		if row[0] == "" || row[1] == "" {
			return nil, fmt.Errorf("%s: row %d: code and name are required", path, i+1)
		}
		market := row[2]
		if market != "domestic" && market != "overseas" {
			return nil, fmt.Errorf("%s: row %d: unknown market %q", path, i+1, market)
		}
		securities = append(securities, entity.Security{
			Code:     row[0],
			Name:     row[1],
			Market:   market,
			Exchange: row[3],
		})
	}
	return securities, nil
}
