package lint

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type stylelintResult struct {
	Warnings []struct {
		Line      int    `json:"line"`
		Column    int    `json:"column"`
		EndLine   int    `json:"endLine"`
		EndColumn int    `json:"endColumn"`
		Rule      string `json:"rule"`
		Severity  string `json:"severity"`
		Text      string `json:"text"`
	} `json:"warnings"`
}

// DecodeStylelint decodes the output of stylelint's json formatter.
func DecodeStylelint(data []byte) (Result, error) {
	var results []stylelintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return Result{}, fmt.Errorf("decode stylelint output: %w", err)
	}
	var res Result
	for _, r := range results {
		for _, w := range r.Warnings {
			res.Add(textSeverity(w.Severity), Finding{
				Text: strings.Replace(w.Text, " ("+w.Rule+")", ".", 1),
				Rule: w.Rule,
				Line: span(w.Line, w.EndLine),
				Col:  span(w.Column, w.EndColumn),
			})
		}
	}
	return res, nil
}

type htmlhintResult struct {
	Messages []struct {
		Type string `json:"type"`
		Line int    `json:"line"`
		Col  int    `json:"col"`
		Rule struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		} `json:"rule"`
	} `json:"messages"`
}

var htmlEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// DecodeHTMLHint decodes the output of htmlhint's json formatter. The rule
// description is used as text, with angle brackets escaped.
func DecodeHTMLHint(data []byte) (Result, error) {
	var results []htmlhintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return Result{}, fmt.Errorf("decode htmlhint output: %w", err)
	}
	var res Result
	for _, r := range results {
		for _, m := range r.Messages {
			res.Add(textSeverity(m.Type), Finding{
				Text: htmlEscaper.Replace(m.Rule.Description),
				Rule: m.Rule.ID,
				Line: strconv.Itoa(m.Line),
				Col:  strconv.Itoa(m.Col),
			})
		}
	}
	return res, nil
}

type eslintResult struct {
	Messages []struct {
		RuleID    string `json:"ruleId"`
		Severity  int    `json:"severity"`
		Message   string `json:"message"`
		Line      int    `json:"line"`
		Column    int    `json:"column"`
		EndLine   int    `json:"endLine"`
		EndColumn int    `json:"endColumn"`
	} `json:"messages"`
}

// DecodeESLint decodes the output of eslint's json formatter. Severity 2 is an
// error and 1 a warning.
func DecodeESLint(data []byte) (Result, error) {
	var results []eslintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return Result{}, fmt.Errorf("decode eslint output: %w", err)
	}
	var res Result
	for _, r := range results {
		for _, m := range r.Messages {
			sev := SeverityNotice
			switch m.Severity {
			case 2:
				sev = SeverityError
			case 1:
				sev = SeverityWarning
			}
			res.Add(sev, Finding{
				Text: m.Message,
				Rule: m.RuleID,
				Line: span(m.Line, m.EndLine),
				Col:  span(m.Column, m.EndColumn),
			})
		}
	}
	return res, nil
}

func textSeverity(s string) Severity {
	switch s {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		return SeverityNotice
	}
}
