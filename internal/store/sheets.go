package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/ratelimit"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements Store against the Google Sheets v4 API using a service
// account credential. Every call passes through a leaky bucket limiter so a
// burst of commands cannot trip the per-minute request quota. Failed calls
// are never retried here, the failure surfaces to the caller immediately.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	limiter       ratelimit.Limiter
}

func NewClient(ctx context.Context, spreadsheetID string, credentialsFile string, perSecond int) (*Client, error) {
	credentials, errRead := os.ReadFile(credentialsFile)
	if errRead != nil {
		return nil, errors.Join(errRead, ErrCredentials)
	}

	jwtConfig, errJWT := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if errJWT != nil {
		return nil, errors.Join(errJWT, ErrCredentials)
	}

	service, errService := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if errService != nil {
		return nil, errors.Join(errService, ErrRemoteCall)
	}

	if perSecond <= 0 {
		perSecond = 1
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		limiter:       ratelimit.New(perSecond),
	}, nil
}

func (c *Client) FetchTable(ctx context.Context, rangeSpec string) ([][]string, error) {
	c.limiter.Take()

	resp, errGet := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rangeSpec).Context(ctx).Do()
	if errGet != nil {
		return nil, errors.Join(errGet, ErrRemoteCall)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, 0, len(values))
		for _, value := range values {
			cell, ok := value.(string)
			if !ok {
				cell = fmt.Sprint(value)
			}

			row = append(row, cell)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, rangeSpec string, row []string) error {
	c.limiter.Take()

	_, errAppend := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, rangeSpec, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if errAppend != nil {
		return errors.Join(errAppend, ErrRemoteCall)
	}

	return nil
}

func (c *Client) UpdateRow(ctx context.Context, rangeSpec string, row []string) error {
	c.limiter.Take()

	_, errUpdate := c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, rangeSpec, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if errUpdate != nil {
		return errors.Join(errUpdate, ErrRemoteCall)
	}

	return nil
}

func (c *Client) NextEmptyRow(ctx context.Context, columnRange string) (int, error) {
	parsed, errParse := parseRange(columnRange)
	if errParse != nil {
		return 0, errParse
	}

	rows, errFetch := c.FetchTable(ctx, columnRange)
	if errFetch != nil {
		return 0, errFetch
	}

	return nextEmptyRow(parsed.startRow, rows), nil
}

// nextEmptyRow returns one past the last non-empty row of a single column
// window whose first row carries the given sheet row index.
func nextEmptyRow(startRow int, rows [][]string) int {
	next := startRow
	for index, row := range rows {
		if len(row) > 0 && row[0] != "" {
			next = startRow + index + 1
		}
	}

	return next
}

func valueRange(row []string) *sheets.ValueRange {
	values := make([]any, len(row))
	for index, cell := range row {
		values[index] = cell
	}

	return &sheets.ValueRange{Values: [][]any{values}}
}
