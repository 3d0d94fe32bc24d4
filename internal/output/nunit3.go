package output

import (
	"bytes"
	"encoding/xml"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"psrule/internal/rules"
)

const nunitHeader = `<?xml version="1.0" encoding="utf-8" standalone="no"?>` + "\n"

type nunitResults struct {
	XMLName      xml.Name         `xml:"test-results"`
	Name         string           `xml:"name,attr"`
	Total        int              `xml:"total,attr"`
	Errors       int              `xml:"errors,attr"`
	Failures     int              `xml:"failures,attr"`
	NotRun       int              `xml:"not-run,attr"`
	Inconclusive int              `xml:"inconclusive,attr"`
	Ignored      int              `xml:"ignored,attr"`
	Skipped      int              `xml:"skipped,attr"`
	Invalid      int              `xml:"invalid,attr"`
	Date         string           `xml:"date,attr"`
	Time         string           `xml:"time,attr"`
	Environment  nunitEnvironment `xml:"environment"`
	Suites       []nunitSuite     `xml:"test-suite"`
}

type nunitEnvironment struct {
	NUnitVersion string `xml:"nunit-version,attr"`
	OSVersion    string `xml:"os-version,attr"`
	Platform     string `xml:"platform,attr"`
	CWD          string `xml:"cwd,attr"`
	MachineName  string `xml:"machine-name,attr"`
	User         string `xml:"user,attr"`
	UserDomain   string `xml:"user-domain,attr"`
}

type nunitSuite struct {
	Type        string      `xml:"type,attr"`
	Name        string      `xml:"name,attr"`
	Executed    string      `xml:"executed,attr"`
	Result      string      `xml:"result,attr"`
	Success     string      `xml:"success,attr"`
	Time        string      `xml:"time,attr"`
	Asserts     int         `xml:"asserts,attr"`
	Description string      `xml:"description,attr"`
	Cases       []nunitCase `xml:"results>test-case"`
}

type nunitCase struct {
	Description string        `xml:"description,attr"`
	Name        string        `xml:"name,attr"`
	Time        string        `xml:"time,attr"`
	Asserts     int           `xml:"asserts,attr"`
	Success     string        `xml:"success,attr"`
	Result      string        `xml:"result,attr"`
	Executed    string        `xml:"executed,attr"`
	Failure     *nunitFailure `xml:"failure,omitempty"`
}

type nunitFailure struct {
	Message    nunitCDATA      `xml:"message"`
	StackTrace nunitStackTrace `xml:"stack-trace"`
}

type nunitCDATA struct {
	Text string `xml:",cdata"`
}

// nunitStackTrace always renders an empty CDATA section.
type nunitStackTrace struct {
	Inner string `xml:",innerxml"`
}

// NUnit3Writer renders one NUnit test fixture per target.
type NUnit3Writer struct {
	documentWriter
	clock   func() time.Time
	started time.Time
	env     nunitEnvironment
}

func NewNUnit3Writer(sink Sink, opts Options) *NUnit3Writer {
	return &NUnit3Writer{
		documentWriter: newDocumentWriter(FormatNUnit3, opts.Path, sink, opts.Outcome),
		clock:          time.Now,
	}
}

// Begin captures the run clock and environment so repeated End calls render
// identical documents.
func (w *NUnit3Writer) Begin() error {
	w.started = w.clock()
	w.env = currentEnvironment()
	return w.documentWriter.Begin()
}

func (w *NUnit3Writer) End() error {
	return w.flush(w.render)
}

func (w *NUnit3Writer) render(results []rules.InvokeResult) ([]byte, error) {
	summary := Summarize(results)
	doc := nunitResults{
		Name:        "PSRule",
		Total:       summary.RuleCount,
		Errors:      summary.Error,
		Failures:    summary.Fail,
		NotRun:      summary.None,
		Ignored:     summary.None,
		Date:        w.started.Format("2006-01-02"),
		Time:        w.started.Format("15:04:05"),
		Environment: w.env,
	}
	for _, group := range summary.Targets {
		doc.Suites = append(doc.Suites, newNUnitSuite(group))
	}

	var buf bytes.Buffer
	buf.WriteString(nunitHeader)
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// newNUnitSuite reports a suite as failed when any record did not pass.
func newNUnitSuite(group TargetGroup) nunitSuite {
	suite := nunitSuite{
		Type:     "TestFixture",
		Name:     group.Name,
		Executed: nunitBool(true),
	}

	var elapsed time.Duration
	for _, r := range group.Records {
		elapsed += r.Time
		suite.Cases = append(suite.Cases, newNUnitCase(group.Name, r))
		if r.Outcome != rules.OutcomePass {
			suite.Asserts++
		}
	}
	suite.Result = "Success"
	if suite.Asserts > 0 {
		suite.Result = "Failure"
	}
	suite.Success = nunitBool(suite.Asserts == 0)
	suite.Time = nunitSeconds(elapsed)
	return suite
}

func newNUnitCase(target string, r rules.RuleRecord) nunitCase {
	tc := nunitCase{
		Description: r.Synopsis(),
		Name:        target + " -- " + r.RuleName(),
		Time:        nunitSeconds(r.Time),
		Success:     nunitBool(r.IsSuccess()),
		Executed:    nunitBool(true),
	}
	switch r.Outcome {
	case rules.OutcomePass:
		tc.Result = "Success"
	case rules.OutcomeFail:
		tc.Result = "Failure"
	case rules.OutcomeError:
		tc.Result = "Error"
	default:
		tc.Result = "Ignored"
		tc.Executed = nunitBool(false)
	}
	if r.Outcome.IsProblem() {
		tc.Failure = &nunitFailure{
			Message:    nunitCDATA{Text: r.Recommendation() + "\n"},
			StackTrace: nunitStackTrace{Inner: "<![CDATA[]]>"},
		}
	}
	return tc
}
