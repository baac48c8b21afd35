package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Extra Extra  `json:"-"`
}

func (s *sample) UnmarshalJSON(b []byte) error {
	type plain sample
	var p plain
	extra, err := DecodeRecord(b, &p)
	if err != nil {
		return err
	}
	*s = sample(p)
	s.Extra = extra
	return nil
}

func (s sample) MarshalJSON() ([]byte, error) {
	type plain sample
	return EncodeRecord(plain(s), s.Extra)
}

func TestRecordKeepsUnknownFields(t *testing.T) {
	in := `{"id":7,"name":"box","customField_12":{"a":[1,2]},"utmTerm":"x"}`

	var s sample
	require.NoError(t, json.Unmarshal([]byte(in), &s))
	assert.Equal(t, 7, s.ID)
	assert.Equal(t, "box", s.Name)
	assert.Len(t, s.Extra, 2)
	assert.JSONEq(t, `{"a":[1,2]}`, string(s.Extra["customField_12"]))

	var term string
	ok, err := s.Extra.Get("utmTerm", &term)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", term)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestRecordWithoutUnknownFields(t *testing.T) {
	var s sample
	require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &s))
	assert.Nil(t, s.Extra)

	ok, err := s.Extra.Get("missing", new(string))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEncodeRecordModeledFieldWins(t *testing.T) {
	s := sample{ID: 2, Extra: Extra{"id": json.RawMessage(`99`), "x": json.RawMessage(`true`)}}
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"x":true}`, string(out))
}

func TestDateTime(t *testing.T) {
	var holder struct {
		At   DateTime `json:"at"`
		Day  DateTime `json:"day"`
		Zero DateTime `json:"zero"`
		Null DateTime `json:"null"`
		Junk DateTime `json:"junk"`
	}
	in := `{"at":"2024-03-05 07:08:09","day":"2024-03-05","zero":"0000-00-00 00:00:00","null":null,"junk":"not a date"}`
	require.NoError(t, json.Unmarshal([]byte(in), &holder))

	assert.True(t, holder.At.Valid())
	assert.True(t, time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local).Equal(holder.At.Time))
	assert.True(t, holder.Day.Valid())
	assert.False(t, holder.Zero.Valid())
	assert.False(t, holder.Null.Valid())
	assert.False(t, holder.Junk.Valid())
	assert.Equal(t, "not a date", holder.Junk.Raw)

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestFlex(t *testing.T) {
	var v struct {
		A Flex `json:"a"`
		B Flex `json:"b"`
		C Flex `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":"250.00","c":""}`), &v))
	assert.Equal(t, Flex(1.5), v.A)
	assert.Equal(t, Flex(250), v.B)
	assert.Equal(t, Flex(0), v.C)
}

func TestPaginationHasNext(t *testing.T) {
	assert.True(t, Pagination{CurrentPage: 1, PageCount: 3}.HasNext())
	assert.False(t, Pagination{CurrentPage: 3, PageCount: 3}.HasNext())
}
