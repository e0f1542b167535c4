package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single submission within an attempt.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			MaxLen(36).
			Comment("Links to QuizAttempt"),
		field.Int("position").
			NonNegative().
			Comment("Zero-based question index"),
		field.Text("prompt").
			Comment("The question shown"),
		field.Int("selected").
			Comment("Chosen option index"),
		field.Text("selected_text"),
		field.Int("correct_index"),
		field.Text("correct_text"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
	}
}

func (AnswerEvent) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("attempt", QuizAttempt.Type).
			Ref("answers").
			Field("attempt_id").
			Unique().
			Required(),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id", "position").Unique(),
	}
}
