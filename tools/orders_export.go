package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"salesdrive"
	"salesdrive/internal/config"
)

// Exports orders as JSON lines.
//
//	go run ./tools -from 2024-01-01 -to 2024-01-31 -status 5 > orders.jsonl
func main() {
	from := flag.String("from", "", "order time from (YYYY-MM-DD or full date time)")
	to := flag.String("to", "", "order time to (YYYY-MM-DD or full date time)")
	status := flag.Int("status", 0, "only orders in this status")
	perPage := flag.Int("limit", 100, "page size, 1..100")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	client, err := salesdrive.NewFromConfig(cfg.SalesDrive, salesdrive.WithLogger(logger.Level(zerolog.WarnLevel)))
	if err != nil {
		logger.Fatal().Err(err).Msg("create client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	total := 0
	for page := 1; ; page++ {
		q := client.FindOrders(nil).Page(page).Limit(*perPage)
		if *from != "" {
			q.OrderTimeFrom(*from)
		}
		if *to != "" {
			q.OrderTimeTo(*to)
		}
		if *status != 0 {
			q.StatusID(*status)
		}

		resp, err := q.Execute(ctx)
		if err != nil {
			out.Flush()
			logger.Fatal().Err(err).Int("page", page).Msg("fetch orders")
		}
		for _, o := range resp.Data {
			if err := enc.Encode(o); err != nil {
				logger.Fatal().Err(err).Msg("write order")
			}
		}
		total += len(resp.Data)

		if len(resp.Data) == 0 || !resp.Pagination.HasNext() {
			break
		}
	}

	fmt.Fprintf(os.Stderr, "exported %d orders\n", total)
}
