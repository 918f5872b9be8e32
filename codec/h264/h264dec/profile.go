/*
DESCRIPTION
  profile.go provides mapping between the profile_idc and level_idc codes of
  an SPS and named profiles and levels.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h264dec

import "github.com/pkg/errors"

// Profile is an H.264 profile, as identified by profile_idc in Annex A.
type Profile int

// Profiles.
const (
	ProfileBaseline Profile = iota
	ProfileMain
	ProfileExtended
	ProfileHigh
)

// Level is an H.264 level, as identified by level_idc in table A-1.
type Level int

// Levels.
const (
	Level1 Level = iota
	Level1b
	Level11
	Level12
	Level13
	Level2
	Level21
	Level22
	Level3
	Level31
	Level32
	Level4
	Level41
)

var profiles = map[uint8]Profile{
	66:  ProfileBaseline,
	77:  ProfileMain,
	88:  ProfileExtended,
	100: ProfileHigh,
}

var profileNames = map[Profile]string{
	ProfileBaseline: "Baseline",
	ProfileMain:     "Main",
	ProfileExtended: "Extended",
	ProfileHigh:     "High",
}

// level_idc 9 is level 1b outside of the constraint_set3_flag signalling
// used by Baseline, Main and Extended.
var levels = map[uint8]Level{
	10: Level1,
	9:  Level1b,
	11: Level11,
	12: Level12,
	13: Level13,
	20: Level2,
	21: Level21,
	22: Level22,
	30: Level3,
	31: Level31,
	32: Level32,
	40: Level4,
	41: Level41,
}

var levelNames = map[Level]string{
	Level1:  "1",
	Level1b: "1b",
	Level11: "1.1",
	Level12: "1.2",
	Level13: "1.3",
	Level2:  "2",
	Level21: "2.1",
	Level22: "2.2",
	Level3:  "3",
	Level31: "3.1",
	Level32: "3.2",
	Level4:  "4",
	Level41: "4.1",
}

// ProfileFromIDC returns the Profile for profile_idc idc.
func ProfileFromIDC(idc uint8) (Profile, error) {
	p, ok := profiles[idc]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedProfileLevel, "profile_idc %d", idc)
	}
	return p, nil
}

// LevelFromIDC returns the Level for level_idc idc.
func LevelFromIDC(idc uint8) (Level, error) {
	l, ok := levels[idc]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedProfileLevel, "level_idc %d", idc)
	}
	return l, nil
}

// IDC returns the profile_idc of p, or 0 if p is not a known profile.
func (p Profile) IDC() uint8 {
	for idc, v := range profiles {
		if v == p {
			return idc
		}
	}
	return 0
}

func (p Profile) String() string {
	if s, ok := profileNames[p]; ok {
		return s
	}
	return "unknown"
}

// IDC returns the level_idc of l, or 0 if l is not a known level.
func (l Level) IDC() uint8 {
	for idc, v := range levels {
		if v == l {
			return idc
		}
	}
	return 0
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}
