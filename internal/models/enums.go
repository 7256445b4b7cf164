package models

import "database/sql"

// GenderNames maps VIS gender codes to display names
var GenderNames = map[string]string{
	"0": "Male",
	"1": "Female",
}

// OrganizerTypeNames maps VIS organizer type codes to display names
var OrganizerTypeNames = map[string]string{
	"0": "Unknown",
	"1": "FIVB",
	"2": "Confederation",
	"3": "MultiSports",
	"4": "Other",
	"5": "National Federation",
}

// TournamentTypeNames maps VIS tournament type codes to display names
var TournamentTypeNames = map[string]string{
	"0":  "Grand slam",
	"1":  "Open",
	"2":  "Challenger",
	"3":  "World series",
	"4":  "World championship",
	"5":  "Olympic games",
	"6":  "Satellite",
	"7":  "Continental championship",
	"8":  "Other continental",
	"9":  "Other",
	"10": "CEV Masters",
	"11": "Continental cup",
	"12": "Continental tour",
	"13": "Junior world championship",
	"14": "Youth world championship",
	"15": "National tour",
	"16": "National tour (under 23 years)",
	"17": "National tour (under 21 years)",
	"18": "National tour (under 19 years)",
	"19": "National tour (under 20 years)",
	"20": "National tour (under 17 years)",
	"21": "National tour (under 15 years)",
	"22": "Continental championship (under 22 years)",
	"23": "Continental championship (under 20 years)",
	"24": "Continental championship (under 18 years)",
	"25": "World championship (under 23 years)",
	"26": "World championship (under 21 years)",
	"27": "World championship (under 19 years)",
	"28": "National tour (under 14 years)",
	"29": "National tour (under 16 years)",
	"30": "National tour (under 18 years)",
	"31": "World championship (under 17 years)",
	"32": "Major Series",
	"33": "World Tour Finals",
	"34": "Zonal Tour",
	"35": "Test",
	"36": "Snow Volleyball",
	"37": "Continental Cup Final",
	"38": "World Tour 5*",
	"39": "World Tour 4*",
	"40": "World Tour 3*",
	"41": "World Tour 2*",
	"42": "World Tour 1*",
	"43": "Youth Olympic Games",
	"44": "Multiple sports",
	"45": "National snow volleyball",
	"46": "National Tour (under 22 years)",
	"47": "Continental championship (under 21 years)",
	"48": "Continental championship (under 19 years)",
	"49": "Qualification tournament for Olympic Games",
	"50": "King of the Court",
	"51": "Pro Tour Elite16",
	"52": "Pro Tour Challenge",
	"53": "Pro Tour Futures",
	"54": "Pro Tour Finals",
	"55": "World Championship Qualification",
}

// GenderName translates a gender code. Unknown codes are null.
func GenderName(code string) sql.NullString {
	return lookup(GenderNames, code)
}

// OrganizerTypeName translates an organizer type code. Unknown codes are null.
func OrganizerTypeName(code string) sql.NullString {
	return lookup(OrganizerTypeNames, code)
}

// TournamentTypeName translates a tournament type code. Unknown codes are null.
func TournamentTypeName(code string) sql.NullString {
	return lookup(TournamentTypeNames, code)
}

func lookup(names map[string]string, code string) sql.NullString {
	name, ok := names[code]
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: name, Valid: true}
}
