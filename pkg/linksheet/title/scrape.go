package title

import "regexp"

var (
	// documentIDPattern finds a "d/.." or "id=.." followed by 25 or more
	// word characters or dashes.
	documentIDPattern = regexp.MustCompile(`(id=|/d/)([-\w]{25,})`)
	titlePattern      = regexp.MustCompile(`<title>(.*?)</title>`)
)

// DocumentID extracts a document-storage identifier from url.
func DocumentID(url string) (string, bool) {
	m := documentIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// Scrape returns the text of the first <title> element in body, or nil.
// The match is a plain pattern on a single line, not an HTML parse.
func Scrape(body string) *string {
	m := titlePattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return &m[1]
}
