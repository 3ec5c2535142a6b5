package sheet

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

type googleValues struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewGoogleValues connects to the spreadsheet with a service account
// credential given as JSON.
func NewGoogleValues(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (Values, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sheets service")
	}

	return &googleValues{
		spreadsheetID: spreadsheetID,
		svc:           svc,
	}, nil
}

func (g *googleValues) Get(ctx context.Context, rng string) ([][]string, error) {
	res, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", rng)
	}

	rows := make([][]string, 0, len(res.Values))
	for _, r := range res.Values {
		cells := make([]string, len(r))
		for i, v := range r {
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (g *googleValues) Update(ctx context.Context, rng string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, toValueRange(rows)).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return errors.Wrapf(err, "update %s", rng)
}

func (g *googleValues) Append(ctx context.Context, rng string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, toValueRange(rows)).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return errors.Wrapf(err, "append %s", rng)
}

func toValueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		cells := make([]interface{}, len(r))
		for j, v := range r {
			cells[j] = v
		}
		values[i] = cells
	}
	return &sheets.ValueRange{Values: values}
}
