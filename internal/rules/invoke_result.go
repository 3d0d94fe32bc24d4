package rules

import (
	"errors"
	"fmt"
)

var ErrTargetMismatch = errors.New("record target does not match invoke result")

// InvokeResult holds every record produced for a single target, in evaluation order.
type InvokeResult struct {
	records []RuleRecord
}

func NewInvokeResult(records ...RuleRecord) (*InvokeResult, error) {
	ir := &InvokeResult{}
	for _, r := range records {
		if err := ir.Add(r); err != nil {
			return nil, err
		}
	}
	return ir, nil
}

// Add appends a record. All records must share the target name and type of the first.
func (ir *InvokeResult) Add(r RuleRecord) error {
	if len(ir.records) > 0 {
		first := ir.records[0]
		if first.TargetName != r.TargetName || first.TargetType != r.TargetType {
			return fmt.Errorf("%w: %s/%s != %s/%s", ErrTargetMismatch, r.TargetName, r.TargetType, first.TargetName, first.TargetType)
		}
	}
	ir.records = append(ir.records, r.clone().normalize())
	return nil
}

// Records returns a deep copy of the records.
func (ir InvokeResult) Records() []RuleRecord {
	out := make([]RuleRecord, len(ir.records))
	for i, r := range ir.records {
		out[i] = r.clone()
	}
	return out
}

// Clone returns a result that shares no memory with ir.
func (ir InvokeResult) Clone() InvokeResult {
	return InvokeResult{records: ir.Records()}
}

func (ir InvokeResult) Len() int {
	return len(ir.records)
}

func (ir InvokeResult) TargetName() string {
	if len(ir.records) == 0 {
		return ""
	}
	return ir.records[0].TargetName
}

func (ir InvokeResult) TargetType() string {
	if len(ir.records) == 0 {
		return ""
	}
	return ir.records[0].TargetType
}

// Outcome is the worst outcome across records: Error, then Fail, then Pass, then None.
func (ir InvokeResult) Outcome() Outcome {
	worst := OutcomeNone
	for _, r := range ir.records {
		if r.Outcome.rank() > worst.rank() {
			worst = r.Outcome
		}
	}
	return worst
}

func (ir InvokeResult) IsSuccess() bool {
	return !ir.Outcome().IsProblem()
}

// Filter returns a new result keeping only records accepted by f.
func (ir InvokeResult) Filter(f OutcomeFilter) InvokeResult {
	out := InvokeResult{}
	for _, r := range ir.records {
		if f.Match(r.Outcome) {
			out.records = append(out.records, r)
		}
	}
	return out
}
