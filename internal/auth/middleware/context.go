package auth

import "context"

type ctxKey string

const ctxKeySub ctxKey = "sub"

// WithSubject stores the authenticated student id in the context.
func WithSubject(ctx context.Context, studentID string) context.Context {
	return context.WithValue(ctx, ctxKeySub, studentID)
}

// SubjectFromContext returns the authenticated student id, or "" when the
// request carries no session.
func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
