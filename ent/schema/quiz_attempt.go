package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttempt records one completed run through a puzzle level.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			MaxLen(36).
			Immutable().
			Comment("UUID assigned on append"),
		field.String("level").
			NotEmpty().
			Comment("Topic key, e.g. beginner or gen-generics-beginner"),
		field.String("label").
			Comment("Topic label at the time of the attempt"),
		field.String("source").
			Default("builtin").
			Comment("builtin, bank, or generated"),
		field.Int("score").
			NonNegative(),
		field.Int("total").
			Positive(),
		field.Int("duration_secs").
			Default(0),
		field.Time("completed_at").
			Immutable(),
	}
}

func (QuizAttempt) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("answers", AnswerEvent.Type),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("level"),
		index.Fields("completed_at"),
	}
}
