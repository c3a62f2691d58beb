package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: TimeString("09:30")},
		{name: "valid midnight", input: "00:00", want: TimeString("00:00")},
		{name: "valid end of day", input: "23:59", want: TimeString("23:59")},
		{name: "invalid hour", input: "24:00", wantErr: true},
		{name: "invalid minutes", input: "10:60", wantErr: true},
		{name: "garbage", input: "abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("17:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("10:00")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), end)

	end, err = start.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), end)

	// Переход через полночь недопустим
	_, err = TimeString("23:30").AddMinutes(60)
	require.Error(t, err)

	// Отрицательное смещение в пределах суток допустимо
	end, err = start.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), end)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("xx:yy").Minutes()
	require.Error(t, err)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	start := TimeString("09:00")
	end := TimeString("10:30")

	diff, err := start.MinutesUntil(end)
	require.NoError(t, err)
	assert.Equal(t, 90, diff)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), ts)

	_, err = NewTimeStringFromMinutes(24 * 60)
	require.Error(t, err)

	_, err = NewTimeStringFromMinutes(-1)
	require.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// PostgreSQL возвращает TIME как HH:MM:SS
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan("17:45"))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	moment := time.Date(2026, 9, 15, 14, 20, 0, 0, time.UTC)
	require.NoError(t, ts.Scan(moment))
	assert.Equal(t, TimeString("14:20"), ts)

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)

	_, err = TimeString("99:99").Value()
	require.Error(t, err)
}
