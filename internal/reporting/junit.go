package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qcodegen/templatecheck/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one template category.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check against one template.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check that did not run.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a SuiteSummary to JUnit XML format. Each
// category becomes a testsuite and each check within a template becomes
// a testcase named "<template>/<check>".
func ConvertToJUnit(summary *models.SuiteSummary) *JUnitTestSuites {
	out := &JUnitTestSuites{
		Time: float64(summary.Digest.DurationMs) / 1000.0,
	}

	for _, cat := range summary.Categories {
		suite := JUnitTestSuite{
			Name:      cat.Name,
			Timestamp: summary.Timestamp.Format(time.RFC3339),
			Properties: []JUnitProperty{
				{Name: "mode", Value: string(summary.Mode)},
				{Name: "run_id", Value: summary.RunID},
			},
		}

		for _, res := range cat.Results {
			for _, check := range res.Checks {
				tc := convertCheckRecord(cat.Name, res.Template, &check)
				suite.Tests++
				if tc.Failure != nil {
					suite.Failures++
				}
				if tc.Skipped != nil {
					suite.Skipped++
				}
				suite.TestCases = append(suite.TestCases, tc)
			}
		}

		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.Skipped += suite.Skipped
		out.TestSuites = append(out.TestSuites, suite)
	}

	return out
}

func convertCheckRecord(category, template string, check *models.CheckRecord) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      fmt.Sprintf("%s/%s", template, check.Name),
		Classname: category,
		Time:      float64(check.DurationMs) / 1000.0,
	}

	switch check.Outcome {
	case models.OutcomeFailed:
		failType := "CheckFailure"
		if check.Advisory {
			failType = "AdvisoryFailure"
		}
		tc.Failure = &JUnitFailure{
			Message: check.Summary,
			Type:    failType,
			Body:    strings.Join(check.Details, "\n"),
		}
	case models.OutcomeSkipped:
		tc.Skipped = &JUnitSkipped{Message: check.Summary}
	}

	return tc
}

// WriteJUnitXML writes the summary as JUnit XML to the specified file path.
func WriteJUnitXML(summary *models.SuiteSummary, path string) error {
	suites := ConvertToJUnit(summary)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
