// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// InitialMMR is the rating assigned to a player's first record.
const InitialMMR = 1000

type rankBand struct {
	minMMR int
	name   string
}

// rankBands are ordered highest first; the first band whose minMMR is not
// above the player's MMR wins. MMR below the lowest band (including negative
// values, which are not clamped) lands on Bronze I.
var rankBands = []rankBand{
	{1500, "Grand Champion"},
	{1400, "Champion III"},
	{1300, "Champion II"},
	{1200, "Champion I"},
	{1100, "Diamond III"},
	{1000, "Diamond II"},
	{900, "Diamond I"},
	{800, "Platinum III"},
	{700, "Platinum II"},
	{600, "Platinum I"},
	{500, "Gold III"},
	{400, "Gold II"},
	{300, "Gold I"},
	{200, "Silver III"},
	{100, "Silver II"},
	{50, "Silver I"},
}

// RankFromMMR derives the display rank from MMR. Pure function.
func RankFromMMR(mmr int) string {
	for _, band := range rankBands {
		if mmr >= band.minMMR {
			return band.name
		}
	}
	return "Bronze I"
}
