package parser

import "regexp"

// Compiled regex patterns for event detection.
//
// Typical server log line:
//
//	[10:00:00] [Server thread/INFO]: Alice[/127.0.0.1:52314] logged in with entity id 42 at (1.5, 64.0, -3.2)
var (
	// Matches the leading bracket token: "[10:00:00]", "[10:00:00 INFO]",
	// "[15Jan2024 10:00:00.123]"
	// Captures: (1) hh, (2) mm, (3) ss
	clockPattern = regexp.MustCompile(
		`^\[[^\[]*(\d{2}):(\d{2}):(\d{2}).*?\]`,
	)

	// Matches: ": Done (3.141s)! For help, type "help""
	serverReadyPattern = regexp.MustCompile(
		`: Done \(\d.*help`,
	)

	// Matches: "UUID of player Alice is 11111111-1111-1111-1111-111111111111"
	// Captures: (1) display name, (2) uuid
	identityPattern = regexp.MustCompile(
		`UUID of player (\S+) is (\S{8}-\S{4}-\S{4}-\S{4}-\S{12})`,
	)

	// Matches: "... config to Alice (11111111-1111-1111-1111-111111111111)"
	// Captures: (1) display name, (2) uuid
	identityAltPattern = regexp.MustCompile(
		`config to (\S+) \((\S{8}-\S{4}-\S{4}-\S{4}-\S{12})\)`,
	)

	// Matches: "Alice[/127.0.0.1:52314] logged in with entity id 42 at"
	// Captures: (1) display name
	joinPattern = regexp.MustCompile(
		`(\S+?)\[\S+\] logged in with entity id \d+ at`,
	)

	// Matches: "]: Alice joined the game", "]: Alice joined"
	// Captures: (1) display name
	joinAltPattern = regexp.MustCompile(
		`\]: (\S+) joined(?: the game)?\s*$`,
	)

	// Matches: "Alice lost connection: Disconnected"
	// Captures: (1) display name, (2) reason
	quitPattern = regexp.MustCompile(
		`(\S+?) lost connection: (.*)`,
	)

	// Matches: "]: Alice left the game"
	// Captures: (1) display name
	quitAltPattern = regexp.MustCompile(
		`\]: (\S+) left the game`,
	)

	// Matches: ": <Alice> hello", ": [Not Secure] <Alice> hello"
	// Captures: (1) display name, (2) content
	chatPattern = regexp.MustCompile(
		`: (?:\[Not Secure\] )?<(\S+)> (.*)`,
	)

	// Matches: "Alice has made the advancement [Stone Age]" and the older
	// achievement, challenge and goal variants.
	// Captures: (1) display name, (2) advancement title
	advancementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\S+) has made the advancement \[(.*)\]`),
		regexp.MustCompile(`(\S+) has just earned the achievement \[(.*)\]`),
		regexp.MustCompile(`(\S+) has completed the challenge \[(.*)\]`),
		regexp.MustCompile(`(\S+) has reached the goal \[(.*)\]`),
	}

	// Matches anything shaped like "]: Alice <message>". Most of these are
	// not deaths; attribution and the exclusion list narrow them down.
	// Captures: (1) display name, (2) message
	deathPattern = regexp.MustCompile(
		`\]: (\S+) (.*)$`,
	)

	// Matches the PvP clause of a death message.
	// Captures: (1) killer display name
	killerPattern = regexp.MustCompile(
		`(?:was slain by|was shot by|was killed by) (\S+)`,
	)
)
