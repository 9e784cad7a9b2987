package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerInputShapes(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  AnswerInput
		fails bool
	}{
		{name: "string", in: `"Pizza"`, want: AnswerInput{Values: []string{"Pizza"}}},
		{name: "array", in: `["Red","Blue"]`, want: AnswerInput{Values: []string{"Red", "Blue"}, Multi: true}},
		{name: "object", in: `{"question":"Pizza or salad?","answer":"Salad"}`, want: AnswerInput{Values: []string{"Salad"}}},
		{name: "object with array", in: `{"answer":["A"]}`, want: AnswerInput{Values: []string{"A"}, Multi: true}},
		{name: "object without answer", in: `{"question":"q"}`, want: AnswerInput{}},
		{name: "null", in: `null`, want: AnswerInput{}},
		{name: "number", in: `42`, fails: true},
		{name: "array of numbers", in: `[1,2]`, fails: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got AnswerInput
			err := json.Unmarshal([]byte(tc.in), &got)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected error for %s", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSubmissionAnswersMustBeArray(t *testing.T) {
	var sub ResponseSubmission
	err := json.Unmarshal([]byte(`{"respondent":"Bob","answers":"Pizza"}`), &sub)
	if err == nil {
		t.Fatal("expected error when answers is not an array")
	}
}

func TestQuestionJSONRoundTrip(t *testing.T) {
	in := `[{"text":"Pizza or salad?","type":"multiple-choice","options":["Pizza","Salad"]},{"text":"Why?","type":"text"}]`

	var qs []Question
	if err := json.Unmarshal([]byte(in), &qs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(qs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", out, in)
	}
}

func TestSurveyNormalize(t *testing.T) {
	s := Survey{Responses: []Response{{Respondent: "Bob"}}}
	s.Normalize()

	if s.Questions == nil || s.Responses[0].Answers == nil {
		t.Fatal("Normalize should replace nil slices")
	}
	b, _ := json.Marshal(Survey{})
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["responses"] != nil {
		t.Fatalf("un-normalized survey encodes responses as %v", m["responses"])
	}
}
