package api

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"math"
	"strconv"
	"strings"
)

// CompanyID accepts a JSON number or string and keeps the decimal string form.
type CompanyID string

func (id *CompanyID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = CompanyID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "companyId must be a number or string")
	}

	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*id = CompanyID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = CompanyID(n.String())
	return nil
}
