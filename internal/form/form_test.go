package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starboard-re/comps-cli/internal/session"
	"github.com/starboard-re/comps-cli/pkg/comparable"
)

// fakeClient records the request it receives and returns canned
// results or a canned error.
type fakeClient struct {
	calls   int
	lastReq comparable.Request
	lastN   int
	results []comparable.Result
	err     error
}

func (f *fakeClient) Search(_ context.Context, req comparable.Request, n int) ([]comparable.Result, error) {
	f.calls++
	f.lastReq = req
	f.lastN = n
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// blockingClient holds the search open until released, to exercise
// the single-outstanding-search guard.
type blockingClient struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingClient) Search(ctx context.Context, _ comparable.Request, _ int) ([]comparable.Result, error) {
	close(b.started)
	select {
	case <-b.release:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	for field, value := range map[string]string{
		FieldLatitude:   "34.0522",
		FieldLongitude:  "-118.2437",
		FieldSquareFeet: "50000",
		FieldYearBuilt:  "2010",
		FieldZoning:     "Industrial",
	} {
		require.NoError(t, f.UpdateField(field, value))
	}
}

func TestUpdateField(t *testing.T) {
	f := New(&fakeClient{}, session.NewMemory())

	require.NoError(t, f.UpdateField(FieldLatitude, "34.0522"))
	require.NoError(t, f.UpdateField(FieldAddress, "123 Industrial Way"))
	require.NoError(t, f.UpdateField(FieldNumComparables, "7"))

	draft := f.Draft()
	assert.Equal(t, "34.0522", draft.Latitude)
	assert.Equal(t, "123 Industrial Way", draft.Address)
	assert.Equal(t, 7, draft.NumComparables)

	assert.Error(t, f.UpdateField("floor_count", "3"))
	assert.Error(t, f.UpdateField(FieldNumComparables, "many"))
}

func TestSubmit_ValidationFailureSendsNoRequest(t *testing.T) {
	missing := []string{
		FieldLatitude, FieldLongitude, FieldSquareFeet, FieldYearBuilt, FieldZoning,
	}

	for _, field := range missing {
		t.Run("missing "+field, func(t *testing.T) {
			client := &fakeClient{}
			store := session.NewMemory()
			f := New(client, store)
			fillValid(t, f)
			require.NoError(t, f.UpdateField(field, ""))

			sess, err := f.Submit(context.Background())
			assert.Nil(t, sess)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, field, vErr.Fields[0].Field)

			// No network call, no persisted state.
			assert.Zero(t, client.calls)
			_, err = store.Read(context.Background())
			assert.ErrorIs(t, err, session.ErrNotFound)
			assert.False(t, f.Searching())
		})
	}
}

func TestSubmit_SerializesDraft(t *testing.T) {
	client := &fakeClient{results: []comparable.Result{{ID: "c1"}}}
	store := session.NewMemory()
	f := New(client, store)
	fillValid(t, f)
	require.NoError(t, f.UpdateField(FieldNumComparables, "3"))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	// Numeric fields are coerced; n travels separately from the body.
	assert.InDelta(t, 34.0522, client.lastReq.Latitude, 1e-9)
	assert.InDelta(t, -118.2437, client.lastReq.Longitude, 1e-9)
	assert.Equal(t, 50000, client.lastReq.SquareFeet)
	assert.Equal(t, 2010, client.lastReq.YearBuilt)
	assert.Equal(t, "Industrial", client.lastReq.Zoning)
	assert.Equal(t, 3, client.lastN)
}

func TestSubmit_ClampsRequestedCount(t *testing.T) {
	client := &fakeClient{}
	f := New(client, session.NewMemory())
	fillValid(t, f)
	require.NoError(t, f.UpdateField(FieldNumComparables, "99"))

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, client.lastN)
}

func TestSubmit_WritesSession(t *testing.T) {
	client := &fakeClient{results: []comparable.Result{
		{ID: "c1", Score: 0.92},
		{ID: "c2", Score: 0.71},
	}}
	store := session.NewMemory()
	f := New(client, store)
	fillValid(t, f)

	sess, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)

	stored, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.Draft(), stored.Subject)
	require.Len(t, stored.Results, 2)
	assert.Equal(t, "c1", stored.Results[0].ID)
	assert.Equal(t, "c2", stored.Results[1].ID)
	assert.False(t, f.Searching())
}

func TestSubmit_FailureLeavesPriorSessionUntouched(t *testing.T) {
	store := session.NewMemory()

	// Seed a prior session from an earlier successful search.
	okClient := &fakeClient{results: []comparable.Result{{ID: "old"}}}
	first := New(okClient, store)
	fillValid(t, first)
	_, err := first.Submit(context.Background())
	require.NoError(t, err)

	failing := &fakeClient{err: errors.New("http 500")}
	second := New(failing, store)
	fillValid(t, second)
	require.NoError(t, second.UpdateField(FieldSquareFeet, "61000"))

	sess, err := second.Submit(context.Background())
	assert.Nil(t, sess)

	var sErr *SearchFailedError
	require.ErrorAs(t, err, &sErr)

	// Back to idle with the entered values intact.
	assert.False(t, second.Searching())
	assert.Equal(t, "61000", second.Draft().SquareFeet)

	// The prior session survives the failed search.
	stored, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old", stored.Results[0].ID)
}

func TestSubmit_SingleOutstandingSearch(t *testing.T) {
	client := &blockingClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := New(client, session.NewMemory())
	fillValid(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	select {
	case <-client.started:
	case <-time.After(time.Second):
		t.Fatal("first submit never reached the client")
	}
	assert.True(t, f.Searching())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSearchInFlight)

	close(client.release)
	require.NoError(t, <-done)
	assert.False(t, f.Searching())
}
