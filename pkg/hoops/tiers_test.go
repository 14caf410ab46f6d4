package hoops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPace(t *testing.T) {
	cases := []struct {
		ppg  float64
		want PaceCategory
		mid  float64
	}{
		{90, PaceVeryFast, 78},
		{85, PaceVeryFast, 78},
		{84.9, PaceFast, 73.5},
		{78, PaceFast, 73.5},
		{70, PaceAverage, 69.5},
		{65, PaceSlow, 66},
		{64.9, PaceVerySlow, 63},
	}
	for _, c := range cases {
		got := ClassifyPace(c.ppg)
		assert.Equal(t, c.want, got, "ppg %v", c.ppg)
		assert.Equal(t, c.mid, got.Midpoint())
	}
}

func TestClassifyPaceDifferential(t *testing.T) {
	assert.Equal(t, PaceNeutral, ClassifyPaceDifferential(5.9))
	assert.Equal(t, PaceModerate, ClassifyPaceDifferential(6))
	assert.Equal(t, PaceModerate, ClassifyPaceDifferential(-7.5))
	assert.Equal(t, PaceMajor, ClassifyPaceDifferential(15))
	assert.Equal(t, PaceExtreme, ClassifyPaceDifferential(16))
}

func TestCombineDefense(t *testing.T) {
	assert.Equal(t, BothEliteGood, CombineDefense(ClassifyCoarseDefense(30), ClassifyCoarseDefense(110)))
	assert.Equal(t, OneGood, CombineDefense(ClassifyCoarseDefense(111), ClassifyCoarseDefense(5)))
	assert.Equal(t, BothAveragePoor, CombineDefense(ClassifyCoarseDefense(111), ClassifyCoarseDefense(363)))
}

func TestClassifyOffense(t *testing.T) {
	assert.Equal(t, OffenseElite, ClassifyOffense(100, 0.48))
	// rank qualifies for elite but shooting does not
	assert.Equal(t, OffenseGood, ClassifyOffense(50, 0.47))
	assert.Equal(t, OffenseAverage, ClassifyOffense(150, 0.40))
	assert.Equal(t, OffenseAverage, ClassifyOffense(300, 0.60))
	assert.Equal(t, OffensePoor, ClassifyOffense(301, 0.60))
}

func TestClassifyDefense(t *testing.T) {
	bounds := map[int]DefenseTier{
		1:   DefenseElite,
		30:  DefenseElite,
		31:  DefenseVeryGood,
		70:  DefenseVeryGood,
		110: DefenseGood,
		180: DefenseAverage,
		250: DefenseBelowAverage,
		320: DefensePoor,
		321: DefenseTerrible,
		363: DefenseTerrible,
	}
	for rank, want := range bounds {
		assert.Equal(t, want, ClassifyDefense(rank), "rank %d", rank)
	}
	assert.Equal(t, "BelowAverage", DefenseBelowAverage.String())
}

func TestClassifyAwayRecord(t *testing.T) {
	assert.Equal(t, AwayMiddling, ClassifyAwayRecord(nil))
	assert.Equal(t, AwayMiddling, ClassifyAwayRecord(&Record{}))
	assert.Equal(t, AwayWeak, ClassifyAwayRecord(&Record{Wins: 0, Losses: 3}))
	assert.Equal(t, AwayWeak, ClassifyAwayRecord(&Record{Wins: 1, Losses: 4}))
	assert.Equal(t, AwayMiddling, ClassifyAwayRecord(&Record{Wins: 1, Losses: 3}))
	assert.Equal(t, AwayStrong, ClassifyAwayRecord(&Record{Wins: 6, Losses: 4}))
}

func TestClassifyOpponent(t *testing.T) {
	assert.Equal(t, OpponentTop, ClassifyOpponent(50))
	assert.Equal(t, OpponentMid, ClassifyOpponent(150))
	assert.Equal(t, OpponentWeak, ClassifyOpponent(151))
}
