package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalID_Unmarshal(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		body    string
		want    OptionalID
		wantErr bool
	}{
		{name: "absent", body: `{}`, want: OptionalID{}},
		{name: "null", body: `{"ref":null}`, want: NullID()},
		{name: "value", body: `{"ref":"` + id.String() + `"}`, want: SomeID(id)},
		{name: "not a uuid", body: `{"ref":"bob"}`, wantErr: true},
		{name: "not a string", body: `{"ref":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Ref OptionalID `json:"ref"`
			}
			err := json.Unmarshal([]byte(tt.body), &payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.Ref)
		})
	}
}

func TestOptionalID_Marshal(t *testing.T) {
	id := uuid.New()

	data, err := json.Marshal(map[string]OptionalID{"a": NullID(), "b": SomeID(id)})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":"`+id.String()+`"}`, string(data))
}

func TestTicketEnums(t *testing.T) {
	assert.True(t, TicketStatusInProgress.Valid())
	assert.False(t, TicketStatus("done").Valid())
	assert.True(t, TicketPriorityUrgent.Valid())
	assert.False(t, TicketPriority("").Valid())
}

func TestNewTicketDetail(t *testing.T) {
	reporter := &User{ID: uuid.New(), Name: "R", Email: "r@example.com", PasswordHash: "x"}
	ticket := &Ticket{ID: uuid.New(), ReporterID: reporter.ID, Reporter: reporter, Category: &Category{Name: "Support", Color: "#3b82f6"}}

	d := NewTicketDetail(ticket)

	assert.Equal(t, &UserRef{ID: reporter.ID, Name: "R", Email: "r@example.com"}, d.Reporter)
	assert.Nil(t, d.Assignee)
	assert.Equal(t, "Support", *d.CategoryName)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "passwordHash")
	assert.Contains(t, string(data), `"categoryColor":"#3b82f6"`)
}
