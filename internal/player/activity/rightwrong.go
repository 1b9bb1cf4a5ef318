package activity

import (
	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/internal/lessons"
)

// RightWrong drives every judge-the-sentences activity of one lesson.
// The user marks each statement as right (tick) or wrong (cross); the
// check compares the judgment with the statement's actual correctness.
type RightWrong struct {
	lesson int
	saver  Saver

	configs   map[string]*lessons.RightWrongConfig
	order     []string
	judgments map[string]map[string]string // activity -> statement -> judgment
}

// StatementResult is the per-statement outcome of a check.
type StatementResult struct {
	UserIsRight bool
	// ShowCorrection is set when the user endorsed a statement that is
	// actually wrong: the corrected wording is shown to teach the fix.
	ShowCorrection bool
}

// NewRightWrong creates the controller with no judgments recorded.
func NewRightWrong(cfgs []lessons.RightWrongConfig, lesson int, saver Saver) *RightWrong {
	r := &RightWrong{
		lesson:    lesson,
		saver:     saver,
		configs:   make(map[string]*lessons.RightWrongConfig, len(cfgs)),
		judgments: make(map[string]map[string]string, len(cfgs)),
	}
	for i := range cfgs {
		cfg := &cfgs[i]
		r.configs[cfg.ActivityID] = cfg
		r.order = append(r.order, cfg.ActivityID)
		r.judgments[cfg.ActivityID] = make(map[string]string)
	}
	return r
}

func (r *RightWrong) statement(cfg *lessons.RightWrongConfig, id string) *lessons.RWStatement {
	for i := range cfg.Statements {
		if cfg.Statements[i].ID == id {
			return &cfg.Statements[i]
		}
	}
	return nil
}

// Judge records a tick or cross for a statement, replacing any earlier
// judgment.
func (r *RightWrong) Judge(activityID, statementID, judgment string) bool {
	if judgment != domain.JudgmentTick && judgment != domain.JudgmentCross {
		return false
	}
	cfg, ok := r.configs[activityID]
	if !ok || r.statement(cfg, statementID) == nil {
		return false
	}
	r.judgments[activityID][statementID] = judgment
	r.save()
	return true
}

// ClearJudgment removes the judgment of one statement.
func (r *RightWrong) ClearJudgment(activityID, statementID string) {
	judged, ok := r.judgments[activityID]
	if !ok {
		return
	}
	if _, has := judged[statementID]; !has {
		return
	}
	delete(judged, statementID)
	r.save()
}

// Judgment returns the recorded judgment for a statement, if any.
func (r *RightWrong) Judgment(activityID, statementID string) (string, bool) {
	j, ok := r.judgments[activityID][statementID]
	return j, ok
}

// Check scores one activity. A judgment is correct when it agrees with
// the statement: tick on a right statement or cross on a wrong one.
func (r *RightWrong) Check(activityID string) (Score, map[string]StatementResult) {
	cfg, ok := r.configs[activityID]
	if !ok {
		return Score{}, nil
	}

	sc := Score{Total: len(cfg.Statements)}
	results := make(map[string]StatementResult)
	judged := r.judgments[activityID]
	for _, st := range cfg.Statements {
		judgment, has := judged[st.ID]
		if !has {
			continue
		}
		sc.Answered++
		res := StatementResult{
			UserIsRight:    (judgment == domain.JudgmentTick) == st.IsRight,
			ShowCorrection: !st.IsRight && judgment == domain.JudgmentTick,
		}
		if res.UserIsRight {
			sc.Correct++
		}
		results[st.ID] = res
	}
	return sc, results
}

// Field implements Controller.
func (r *RightWrong) Field() string { return domain.FieldRightWrong }

// Capture implements Controller. Activities with no judgments are
// omitted.
func (r *RightWrong) Capture() any {
	out := make(map[string]map[string]string)
	for id, judged := range r.judgments {
		if len(judged) == 0 {
			continue
		}
		clone := make(map[string]string, len(judged))
		for st, j := range judged {
			clone[st] = j
		}
		out[id] = clone
	}
	return out
}

// Apply implements Controller. Only known statements with a valid
// judgment value are restored.
func (r *RightWrong) Apply(state domain.LessonState) {
	if state.RightWrong == nil {
		return
	}

	for _, id := range r.order {
		cfg := r.configs[id]
		judged := make(map[string]string)
		stored, ok := state.RightWrong[id]
		if ok {
			for _, st := range cfg.Statements {
				j, has := stored[st.ID]
				if !has || (j != domain.JudgmentTick && j != domain.JudgmentCross) {
					continue
				}
				judged[st.ID] = j
			}
		}
		r.judgments[id] = judged
	}
}

// Reset implements Controller: every judgment cleared.
func (r *RightWrong) Reset() {
	for _, id := range r.order {
		r.judgments[id] = make(map[string]string)
	}
	r.save()
}

func (r *RightWrong) save() {
	r.saver.ScheduleFieldSave(r.lesson, r.Field(), r.Capture())
}
