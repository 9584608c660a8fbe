package dto

import "time"

// StockOHLCV is one daily price bar.
type StockOHLCV struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Timestamp int64   `json:"timestamp"`
}

// StockData is the ordered daily series ingested for one symbol.
type StockData struct {
	MarketPrice float64      `json:"market_price"`
	OHLCV       []StockOHLCV `json:"ohlc"`
}

// LatestClose returns the close of the most recent bar.
func (d *StockData) LatestClose() float64 {
	if len(d.OHLCV) == 0 {
		return 0
	}
	return d.OHLCV[len(d.OHLCV)-1].Close
}

type GetStockDataParam struct {
	Ticker    string    `json:"ticker"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Yahoo Finance chart API response
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
