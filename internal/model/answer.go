package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerShape 提交答案的两种形态
type AnswerShape int

const (
	AnswerNone AnswerShape = iota
	AnswerRaw
	AnswerStructured
)

// Answer is the submitted value for one question: either a bare string or a
// structured object. A client-supplied is_correct is discarded on decode.
type Answer struct {
	Shape          AnswerShape
	Raw            string
	Text           *string
	SelectedOption *string
}

func RawAnswer(s string) Answer {
	return Answer{Shape: AnswerRaw, Raw: s}
}

func StructuredAnswer(text, selectedOption *string) Answer {
	return Answer{Shape: AnswerStructured, Text: text, SelectedOption: selectedOption}
}

// Present 为 false 表示该题未作答
func (a Answer) Present() bool {
	return a.Shape != AnswerNone
}

type structuredAnswerJSON struct {
	Text           *string `json:"text"`
	SelectedOption *string `json:"selected_option"`
	IsCorrect      *bool   `json:"is_correct,omitempty"`
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = Answer{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAnswer(s)
		return nil
	case data[0] == '{':
		var s structuredAnswerJSON
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = StructuredAnswer(s.Text, s.SelectedOption)
		return nil
	}
	return fmt.Errorf("answer must be a string or an object, got %s", string(data))
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Shape {
	case AnswerRaw:
		return json.Marshal(a.Raw)
	case AnswerStructured:
		return json.Marshal(structuredAnswerJSON{Text: a.Text, SelectedOption: a.SelectedOption})
	}
	return []byte("null"), nil
}

// GradedAnswer 落库形态：规范化后的答案加服务端判定结果
type GradedAnswer struct {
	Text           *string `json:"text"`
	SelectedOption *string `json:"selected_option"`
	IsCorrect      *bool   `json:"is_correct"`
}
