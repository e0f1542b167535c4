package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	TableAttempts    = "quiz_attempts"
	TableAnswers     = "answer_events"
	TableLLMRequests = "llm_request_events"
)

var (
	// attemptColumns holds the columns for the "quiz_attempts" table.
	attemptColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "level", Type: field.TypeString},
		{Name: "label", Type: field.TypeString},
		{Name: "source", Type: field.TypeString, Default: SourceBuiltin},
		{Name: "score", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		{Name: "completed_at", Type: field.TypeTime},
	}
	// AttemptsTable holds the schema information for the "quiz_attempts" table.
	AttemptsTable = &schema.Table{
		Name:       TableAttempts,
		Columns:    attemptColumns,
		PrimaryKey: []*schema.Column{attemptColumns[0]},
		Indexes: []*schema.Index{
			{Name: "quizattempt_level", Columns: []*schema.Column{attemptColumns[2]}},
			{Name: "quizattempt_completed_at", Columns: []*schema.Column{attemptColumns[8]}},
		},
	}

	// answerColumns holds the columns for the "answer_events" table.
	answerColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "attempt_id", Type: field.TypeString, Size: 36},
		{Name: "position", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647},
		{Name: "selected", Type: field.TypeInt},
		{Name: "selected_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_index", Type: field.TypeInt},
		{Name: "correct_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct", Type: field.TypeBool},
	}
	// AnswersTable holds the schema information for the "answer_events" table.
	AnswersTable = &schema.Table{
		Name:       TableAnswers,
		Columns:    answerColumns,
		PrimaryKey: []*schema.Column{answerColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "answer_events_quiz_attempts_answers",
				Columns:    []*schema.Column{answerColumns[1]},
				RefColumns: []*schema.Column{attemptColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "answerevent_attempt_id_position", Unique: true, Columns: []*schema.Column{answerColumns[1], answerColumns[2]}},
		},
	}

	// llmRequestColumns holds the columns for the "llm_request_events" table.
	llmRequestColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestsTable holds the schema information for the "llm_request_events" table.
	LLMRequestsTable = &schema.Table{
		Name:       TableLLMRequests,
		Columns:    llmRequestColumns,
		PrimaryKey: []*schema.Column{llmRequestColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestColumns[5]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
		AnswersTable,
		LLMRequestsTable,
	}
)

func init() {
	AnswersTable.ForeignKeys[0].RefTable = AttemptsTable
}
