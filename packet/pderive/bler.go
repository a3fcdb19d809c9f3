package pderive

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/prepeat"
)

var recordSuffixPattern = regexp.MustCompile(`\(Record (\d+)\)`)

// BlerRule fills in the block-error-rate fields of the PDSCH statistics
// logcode: BLER = 100 * fail / (pass + fail) and Residual BLER = 100 *
// harq_failures / (pass + fail), both rounded to two decimals, for the
// top-level record and for every repeated carrier record. A zero total
// yields 0.00% rather than a division by zero.
func BlerRule(fields []pfield.DecodedField) {
	indexByName := map[string]int{}
	for i, field := range fields {
		if _, seen := indexByName[field.Name]; !seen {
			indexByName[field.Name] = i
		}
	}

	suffixes := []string{""}
	recordSuffixes := lo.Uniq(lo.FilterMap(
		fields,
		func(field pfield.DecodedField, _ int) (string, bool) {
			match := recordSuffixPattern.FindStringSubmatch(field.Name)
			if match == nil {
				return "", false
			}
			recordIdx, err := strconv.Atoi(match[1])
			if err != nil {
				return "", false
			}
			return prepeat.RecordSuffix(recordIdx), true
		},
	))
	suffixes = append(suffixes, recordSuffixes...)

	for _, suffix := range suffixes {
		passIdx, havePass := indexByName["Num CRC Pass TB"+suffix]
		failIdx, haveFail := indexByName["Num CRC Fail TB"+suffix]
		if !havePass || !haveFail {
			continue
		}
		pass, okPass := counterValue(fields[passIdx].RawValue)
		fail, okFail := counterValue(fields[failIdx].RawValue)
		if !okPass || !okFail {
			continue
		}
		total := pass + fail

		if blerIdx, ok := indexByName["BLER"+suffix]; ok {
			setPercent(&fields[blerIdx], fail, total)
		}
		if residualIdx, ok := indexByName["Residual BLER"+suffix]; ok {
			if harqIdx, ok := indexByName["HARQ Failure"+suffix]; ok {
				harq, okHarq := counterValue(fields[harqIdx].RawValue)
				if okHarq {
					setPercent(&fields[residualIdx], harq, total)
				}
			}
		}
	}
}

func setPercent(field *pfield.DecodedField, numerator, denominator float64) {
	percent := 0.0
	if denominator > 0 {
		percent = math.Round(100*numerator/denominator*100) / 100
	}
	field.RawValue = percent
	field.FriendlyValue = fmt.Sprintf("%.2f%%", percent)
}

func counterValue(raw any) (float64, bool) {
	switch value := raw.(type) {
	case uint64:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	}
	return 0, false
}
