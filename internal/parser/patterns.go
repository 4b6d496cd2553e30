package parser

import "regexp"

// ignoredSubstrings mark engine and HUD chatter that is dropped before classification.
var ignoredSubstrings = []string{
	"Server using port",
	"Server listening on address",
	"Loading csprogs.dat",
	"server detected csqc progs",
	"Compressing csprogs.dat",
	"Deflated:",
	"Saving persistent data",
	"done!",
	"Mod_Q3BSP_LoadFaces",
	"Tuba awaits you... not",
	"Sys_DoubleTime",
	":labels:",
	":player:",
	":end",
	":scores:",
	`"fraglimit" changed to`,
	`"timelimit" changed to`,
}

var (
	matchStartRe = regexp.MustCompile(`=* Log started \((.*)\)`)
	winRe        = regexp.MustCompile(`(.*) wins`)
)

// statePattern matches connection, spectate, chat and streak announcements.
type statePattern struct {
	label string
	re    *regexp.Regexp
}

// killFamily groups every phrasing of one weapon. Each alternative must
// define the named groups "victim" and "killer".
type killFamily struct {
	weapon       string
	alternatives []*regexp.Regexp
}

// suicideFamily groups every phrasing of one cause. Each alternative must
// define the named group "victim".
type suicideFamily struct {
	cause        string
	alternatives []*regexp.Regexp
}

// Families are checked in declaration order.
var statePatterns = []statePattern{
	{"connected", regexp.MustCompile(`(.*) connected`)},
	{"spectating", regexp.MustCompile(`(.*) is spectating now`)},
	{"playing", regexp.MustCompile(`(.*) is playing now`)},
	{"chat", regexp.MustCompile(`(.*): .*$`)},
	{"firstblood", regexp.MustCompile(`(.*) drew first blood`)},
	{"streak", regexp.MustCompile(`(.*) has (\d+) frags in a row`)},
	{"streakend", regexp.MustCompile(`(.*)'s (\d+) kill spree was ended by (.*)`)},
	{"streakendsuicide", regexp.MustCompile(`(.*) ended it all after a (\d+) kill spree`)},
	{"triple", regexp.MustCompile(`(.*) made a TRIPLE FRAG`)},
	{"rage", regexp.MustCompile(`(.*) unleashes RAGE`)},
	{"massacre", regexp.MustCompile(`(.*) starts the MASSACRE`)},
	{"mayhem", regexp.MustCompile(`(.*) executes MAYHEM!`)},
	{"dropped", regexp.MustCompile(`Client "(.*)" dropped`)},
	{"disconnected", regexp.MustCompile(`(.*) disconnected`)},
}

func compileAll(phrasings ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(phrasings))
	for i, p := range phrasings {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

var killFamilies = []killFamily{
	{"shotgun", compileAll(
		`(?P<victim>.*) was gunned by (?P<killer>.*)`,
	)},
	{"machinegun", compileAll(
		`(?P<victim>.*) was riddled full of holes by (?P<killer>.*)`,
	)},
	{"nex", compileAll(
		`(?P<victim>.*) was sniped by (?P<killer>.*)`,
		`(?P<victim>.*) has been vaporized by (?P<killer>.*)`,
	)},
	{"crylink", compileAll(
		`(?P<victim>.*) could not hide from (?P<killer>.*)'s Crylink`,
		`(?P<victim>.*) took a close look at (?P<killer>.*)'s Crylink`,
		`(?P<victim>.*) was too close to (?P<killer>.*)'s Crylink`,
	)},
	{"rocket", compileAll(
		`(?P<victim>.*) almost dodged (?P<killer>.*)'s rocket`,
		`(?P<victim>.*) ate (?P<killer>.*)'s rocket`,
		`(?P<victim>.*) hoped (?P<killer>.*)'s missiles wouldn't bounce`,
	)},
	{"blue", compileAll(
		`(?P<victim>.*) got too close to (?P<killer>.*)'s blue beam`,
		`(?P<victim>.*) was blasted by (?P<killer>.*)'s blue beam`,
		`(?P<victim>.*) got in touch with (?P<killer>.*)'s blue ball`,
	)},
	{"bluecombo", compileAll(
		`(?P<victim>.*) felt the electrifying air of (?P<killer>.*)'s combo`,
	)},
	{"grenade", compileAll(
		`(?P<victim>.*) almost dodged (?P<killer>.*)'s grenade`,
		`(?P<victim>.*) ate (?P<killer>.*)'s grenade`,
	)},
	{"telefrag", compileAll(
		`(?P<victim>.*) was telefragged by (?P<killer>.*)`,
	)},
	{"pummel", compileAll(
		`(?P<victim>.*) was pummeled by (?P<killer>.*)`,
	)},
	{"grounded", compileAll(
		`(?P<victim>.*) was grounded by (?P<killer>.*)`,
	)},
	{"slimed", compileAll(
		`(?P<victim>.*) was slimed by (?P<killer>.*)`,
	)},
	{"lava", compileAll(
		`(?P<victim>.*) was cooked by (?P<killer>.*)`,
	)},
	{"bounds", compileAll(
		`(?P<victim>.*) was thrown into a world of hurt by (?P<killer>.*)`,
	)},
}

var suicideFamilies = []suicideFamily{
	{"detonated", compileAll(`(?P<victim>.*) detonated`)},
	{"plasma", compileAll(
		`(?P<victim>.*) played with plasma`,
		`(?P<victim>.*) could not remember where he put plasma`,
	)},
	{"rocket", compileAll(`(?P<victim>.*) played with tiny rockets`)},
	{"slimed", compileAll(`(?P<victim>.*) was slimed`)},
	{"crylink", compileAll(`(?P<victim>.*) succeeded at self-destructing himself with the Crylink`)},
	{"explode", compileAll(`(?P<victim>.*) exploded`)},
	{"bounds", compileAll(`(?P<victim>.*) was in the wrong place`)},
	{"fall", compileAll(`(?P<victim>.*) hit the ground with a crunch`)},
}
