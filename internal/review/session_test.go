package review

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/jonathan/spec-customizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestion(id string, line int, original, suggested string) types.Suggestion {
	return types.Suggestion{
		ID:            id,
		Title:         "Replace product",
		Type:          types.SuggestionUpdate,
		Priority:      types.PriorityMedium,
		Category:      "Products",
		LineNumber:    &line,
		OriginalText:  &original,
		SuggestedText: suggested,
		Status:        types.StatusPending,
	}
}

func TestSession_ApproveThenRevise(t *testing.T) {
	doc := NewDocument("a.txt", "Line1: use Product X\nLine2: ok")
	session := NewSession(doc, []types.Suggestion{suggestion("s1", 1, "Product X", "Product Y")})

	approved, err := session.Approve("s1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, approved.Status)
	assert.Equal(t, "Line1: use Product Y\nLine2: ok", session.Revised())
	assert.Equal(t, "Line1: use Product X\nLine2: ok", doc.Text())
}

func TestSession_DecidedSuggestionsAreFinal(t *testing.T) {
	session := NewSession(NewDocument("a.txt", "Product X and Product Z"), []types.Suggestion{
		suggestion("s1", 1, "Product X", "Product Y"),
		suggestion("s2", 1, "Product Z", "Product W"),
	})

	_, err := session.Approve("s1")
	require.NoError(t, err)
	_, err = session.Reject("s2")
	require.NoError(t, err)

	_, err = session.Reject("s1")
	var decisionErr *DecisionError
	require.ErrorAs(t, err, &decisionErr)
	assert.Equal(t, types.StatusApproved, decisionErr.From)

	_, err = session.Approve("s2")
	require.ErrorAs(t, err, &decisionErr)

	assert.Empty(t, session.ApproveAll())

	s1, _ := session.Suggestion("s1")
	s2, _ := session.Suggestion("s2")
	assert.Equal(t, types.StatusApproved, s1.Status)
	assert.Equal(t, types.StatusRejected, s2.Status)
}

func TestSession_CannotReturnToPending(t *testing.T) {
	session := NewSession(NewDocument("a.txt", "Product X"), []types.Suggestion{suggestion("s1", 1, "Product X", "Product Y")})

	_, err := session.Decide("s1", types.StatusPending)
	var decisionErr *DecisionError
	require.ErrorAs(t, err, &decisionErr)

	s1, _ := session.Suggestion("s1")
	assert.Equal(t, types.StatusPending, s1.Status)
}

func TestSession_UnknownSuggestion(t *testing.T) {
	session := NewSession(NewDocument("a.txt", "x"), nil)

	_, err := session.Approve("missing")
	assert.True(t, errors.Is(err, ErrSuggestionNotFound))
	_, err = session.Suggestion("missing")
	assert.True(t, errors.Is(err, ErrSuggestionNotFound))
	assert.NotNil(t, session.Suggestions())
}

func TestSession_ApproveAllOnlyTouchesPending(t *testing.T) {
	session := NewSession(NewDocument("a.txt", "A B C"), []types.Suggestion{
		suggestion("s1", 1, "A", "a"),
		suggestion("s2", 1, "B", "b"),
		suggestion("s3", 1, "C", "c"),
	})
	_, err := session.Reject("s2")
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s3"}, session.ApproveAll())
	assert.Equal(t, "a B c", session.Revised())
	assert.Len(t, session.Approved(), 2)
}

func TestSession_StateMachineClosure(t *testing.T) {
	ids := []string{"s1", "s2", "s3", "s4"}
	var suggestions []types.Suggestion
	for _, id := range ids {
		suggestions = append(suggestions, suggestion(id, 1, id, id+"!"))
	}
	session := NewSession(NewDocument("a.txt", "s1 s2 s3 s4"), suggestions)

	rng := rand.New(rand.NewSource(7))
	first := make(map[string]types.SuggestionStatus)
	for step := 0; step < 200; step++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(4) {
		case 0:
			_, _ = session.Approve(id)
		case 1:
			_, _ = session.Reject(id)
		case 2:
			_, _ = session.Decide(id, types.StatusPending)
		case 3:
			if rng.Intn(10) == 0 {
				session.ApproveAll()
			}
		}
		for _, s := range session.Suggestions() {
			if prev, decided := first[s.ID]; decided {
				require.Equal(t, prev, s.Status, "decided suggestion %s changed", s.ID)
			} else if s.Status != types.StatusPending {
				first[s.ID] = s.Status
			}
		}
	}
}

func TestSession_ConcurrentDecisions(t *testing.T) {
	session := NewSession(NewDocument("a.txt", "Product X"), []types.Suggestion{suggestion("s1", 1, "Product X", "Product Y")})

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = session.Approve("s1")
			} else {
				_, err = session.Reject("s1")
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestSession_MalformedSuggestionsStayActionable(t *testing.T) {
	noLine := suggestion("no-line", 1, "Product X", "Product Y")
	noLine.LineNumber = nil
	notFound := suggestion("not-found", 1, "Product Q", "Product Y")
	noReplacement := suggestion("no-replacement", 1, "Product X", "")
	outOfRange := suggestion("out-of-range", 9, "Product X", "Product Y")

	session := NewSession(NewDocument("a.txt", "use Product X"), []types.Suggestion{noLine, notFound, noReplacement, outOfRange})

	for _, s := range session.Suggestions() {
		assert.False(t, s.Renderable, s.ID)
	}
	assert.Equal(t, []string{"no-line", "not-found", "no-replacement", "out-of-range"}, session.ApproveAll())
	assert.Equal(t, "use Product X", session.Revised())

	lines := session.Render()
	require.Len(t, lines, 1)
	assert.Equal(t, []Segment{{Kind: SegmentPlain, Text: "use Product X"}}, lines[0].Segments)
}

func TestSession_BlankStatusBecomesPending(t *testing.T) {
	s := suggestion("s1", 1, "X", "Y")
	s.Status = ""
	session := NewSession(NewDocument("a.txt", "X"), []types.Suggestion{s})

	got, err := session.Suggestion("s1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, got.Status)
}

func TestSession_SnapshotsAreCopies(t *testing.T) {
	input := []types.Suggestion{suggestion("s1", 1, "Product X", "Product Y")}
	session := NewSession(NewDocument("a.txt", "Product X"), input)

	*input[0].OriginalText = "changed"
	snapshot := session.Suggestions()
	*snapshot[0].OriginalText = "changed again"

	got, _ := session.Suggestion("s1")
	assert.Equal(t, "Product X", got.Original())
}

func TestWorkspace_OpenReplacesSession(t *testing.T) {
	ws := NewWorkspace(nil)
	assert.Nil(t, ws.Current())

	first := ws.Open("a.txt", "Comply with IBC 2015.")
	ids := first.ApproveAll()
	require.Len(t, ids, 1)

	second := ws.Open("b.txt", "Comply with IBC 2018.")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, ws.Current())
	for _, s := range second.Suggestions() {
		assert.Equal(t, types.StatusPending, s.Status)
	}
	assert.Equal(t, "b.txt", second.Document().FileName)

	ws.Close()
	assert.Nil(t, ws.Current())
}

func TestWorkspace_AdoptReplacesSession(t *testing.T) {
	analyzer := NewAnalyzer(Options{})
	ws := NewWorkspace(analyzer)

	first := ws.Open("a.txt", "Comply with IBC 2015.")
	first.ApproveAll()

	analysis := analyzer.Analyze("b.txt", "Comply with NFPA 70 2017.")
	extra := suggestion("ai-001", 1, "Comply", "Conform")
	adopted := ws.Adopt(analysis.Document, Merge(analysis.Suggestions, []types.Suggestion{extra}))

	assert.Same(t, adopted, ws.Current())
	require.Len(t, adopted.Suggestions(), 2)
	assert.Equal(t, 2, adopted.Summary().ByStatus[types.StatusPending])
	assert.Equal(t, types.StatusApproved, first.Suggestions()[0].Status)
}
