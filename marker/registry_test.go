package marker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDispatchFirstMatchWins(t *testing.T) {
	var hits []string
	r := New()
	r.On(func(_ *excelize.File, _ string, _, _ int, v string) error {
		hits = append(hits, "cut:"+v)
		return nil
	}, "ครั้งที่ 2", "ที่ครั้ง 2")
	r.On(func(_ *excelize.File, _ string, _, _ int, v string) error {
		hits = append(hits, "any:"+v)
		return nil
	}, "CL")
	r.On(nil, "")

	assert.Equal(t, 3, r.Len())

	ok, err := r.Dispatch(nil, "s", 0, 0, "CL1 ตัดม้วนที่ครั้ง 2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Dispatch(nil, "s", 0, 0, "CL4")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Dispatch(nil, "s", 0, 0, "nothing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"cut:CL1 ตัดม้วนที่ครั้ง 2", "any:CL4"}, hits)
}

func TestDispatchError(t *testing.T) {
	boom := errors.New("boom")
	r := New()
	r.On(func(*excelize.File, string, int, int, string) error { return boom }, "x")

	ok, err := r.Dispatch(nil, "s", 1, 1, "x")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}
