// Package linksheet keeps a spreadsheet of shortened links and their click
// analytics up to date, and shortens URLs typed into the sheet.
package linksheet

import "github.com/ukaji3/linksheet-go/pkg/linksheet/models"

// Prompts shown to the user.
const (
	PromptNotOwnerUpdate  = "You are not the owner of this sheet, thus the counters cannot be updated. Ask the owner to update or else make a copy of this sheet."
	PromptNotOwnerShorten = "You are not the owner of this sheet, thus you cannot use this service. Make a copy of this sheet for your own use."
	PromptNoLinks         = "No short urls found for your account"
	PromptNoLongURL       = "Type the url to shorten into cell A2 of the shorten sheet first."
)

// Options configures the sheet layout.
type Options struct {
	// DataSheet receives the link directory.
	DataSheet string
	// ShortenSheet holds the URL to shorten and receives the short id.
	ShortenSheet string
	// Header is the first row of the link directory. Nil means no header.
	Header models.Row
	// InputRow and InputCol locate the URL to shorten (1-based).
	InputRow, InputCol int
	// OutputRow and OutputCol locate the short id written back (1-based).
	OutputRow, OutputCol int
}

// DefaultOptions returns the default sheet layout.
func DefaultOptions() Options {
	return Options{
		DataSheet:    "Data",
		ShortenSheet: "Make Short Url",
		Header:       models.Header,
		InputRow:     2,
		InputCol:     1,
		OutputRow:    2,
		OutputCol:    2,
	}
}

// Sheets returns the names of the sheets the options refer to.
func (o Options) Sheets() []string {
	return []string{o.DataSheet, o.ShortenSheet}
}
