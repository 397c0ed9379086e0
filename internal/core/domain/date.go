package domain

import "time"

const (
	isoDateLayout      = "2006-01-02"
	exchangeDateLayout = "20060102"
)

// ParseTravelDate accepts YYYYMMDD or YYYY-MM-DD and returns the ISO form.
func ParseTravelDate(raw string) (string, error) {
	if raw == "" {
		return "", InvalidInputError{Field: "departDate", Msg: "is required"}
	}

	for _, layout := range []string{exchangeDateLayout, isoDateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(isoDateLayout), nil
		}
	}

	return "", InvalidInputError{Field: "departDate", Msg: "expected YYYYMMDD or YYYY-MM-DD, got " + raw}
}

// ExchangeDate converts an ISO date to the compact form suppliers expect.
func ExchangeDate(isoDate string) string {
	t, err := time.Parse(isoDateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(exchangeDateLayout)
}
