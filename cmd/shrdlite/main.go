/*
Shrdlite starts an interactive blocks-world session.

It loads a scenario file and then reads natural-language sentences from
stdin, interpreting and planning each one against the current state of
the arm and blocks, printing the resulting plan (or an error) before
reading the next sentence.

Usage:

	shrdlite [flags]

The flags are:

	-v, --version
		Give the current version of shrdlite and then exit.

	-w, --world FILE
		Use the provided TOML scenario file for the world. Defaults to
		"scene.toml" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using
		GNU readline based routines for reading input, even if launched
		in a tty with stdin and stdout.

	-c, --command SENTENCES
		Immediately run the given sentence(s) at start. Multiple
		sentences may be separated by the ";" character.

Once a session has started, each line of input is treated as a
blocks-world command sentence ("take the blue pyramid", "put the ball in
the box", and so on). Type "QUIT" to exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/shrdlite/config"
	"github.com/dekarrin/shrdlite/internal/input"
	"github.com/dekarrin/shrdlite/internal/interpreter"
	"github.com/dekarrin/shrdlite/internal/nlparse"
	"github.com/dekarrin/shrdlite/internal/planner"
	"github.com/dekarrin/shrdlite/internal/scenario"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/internal/world"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitGameError
	ExitInitError
)

const consoleOutputWidth = 80

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	worldFile    = pflag.StringP("world", "w", config.DefaultScenarioPath, "The TOML scenario file describing the world")
	forceDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through readline where possible")
	startCommand = pflag.StringP("command", "c", "", "Execute the given sentence(s) immediately at start and leave the session open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startSentences []string
	if *startCommand != "" {
		startSentences = strings.Split(*startCommand, ";")
	}

	eng, err := newEngine(os.Stdin, os.Stdout, *worldFile, *forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(startSentences); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
	}
}

// engine runs an interactive blocks-world session against a single
// loaded scenario, structurally ported from engine.go's Engine: an
// input reader, an output writer, and a running flag, but holding a
// mutating world.State between sentences instead of a game.State, per
// spec §5's "mutation is the caller's responsibility after a plan is
// returned and executed."
type engine struct {
	scene       scenario.Scene
	state       world.State
	in          input.SentenceReader
	out         io.Writer
	forceDirect bool
	running     bool
}

func newEngine(inStream io.Reader, outStream io.Writer, scenarioPath string, forceDirectInput bool) (*engine, error) {
	if inStream == nil {
		inStream = os.Stdin
	}
	if outStream == nil {
		outStream = os.Stdout
	}

	scene, err := scenario.LoadScene(scenarioPath)
	if err != nil {
		return nil, err
	}

	eng := &engine{
		scene:       scene,
		state:       scene.Start,
		out:         outStream,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inStream == os.Stdin && outStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader("> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inStream)
	}

	return eng, nil
}

func (eng *engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running session")
	}
	return eng.in.Close()
}

func (eng *engine) print(format string, a ...interface{}) error {
	s := fmt.Sprintf(format, a...)
	s = rosed.Edit(s).Wrap(consoleOutputWidth).String()
	_, err := io.WriteString(eng.out, s)
	return err
}

// RunUntilQuit runs startSentences (if any) and then reads further
// sentences from eng.in until "QUIT" is entered or input ends.
func (eng *engine) RunUntilQuit(startSentences []string) error {
	introMsg := "Welcome to shrdlite\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "====================\n\n"
	if err := eng.print(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() { eng.running = false }()

	for _, sentence := range startSentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		eng.handle(sentence)
	}

	for eng.running {
		sentence, err := eng.in.ReadSentence()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read input: %w", err)
		}

		if strings.EqualFold(sentence, "QUIT") {
			break
		}

		eng.handle(sentence)
	}

	return eng.print("Goodbye\n")
}

// handle interprets and plans a single sentence against the session's
// current state, printing either the resulting plan's messages or an
// error, and advances the session's state if a plan was found.
func (eng *engine) handle(sentence string) {
	currentScene := world.Scene{Objects: eng.scene.Objects, Start: eng.state}

	parses, err := nlparse.Parse(sentence)
	if err != nil {
		eng.print("I don't understand: %s\n", err.Error())
		return
	}

	results, err := interpreter.Interpret(parses, currentScene)
	if err != nil {
		eng.print("%s\n", shrdliteerr.GameMessage(err))
		return
	}

	transcript, err := planner.Plan(currentScene, results[0].Goal, 0)
	if err != nil {
		eng.print("%s\n", shrdliteerr.GameMessage(err))
		return
	}

	for _, msg := range planner.Messages(transcript) {
		if err := eng.print("%s\n", msg); err != nil {
			return
		}
	}

	for _, action := range planner.ActionTokens(transcript) {
		eng.state = applyAction(eng.state, eng.scene.Objects, planner.Action(action))
	}
}

// applyAction returns the state that results from taking action a from
// s, found by asking internal/planner.Successors for every legal move
// from s and picking the one matching a. a is always one the planner
// itself emitted as part of a feasible plan, so a match always exists.
func applyAction(s world.State, cat world.Catalogue, a planner.Action) world.State {
	for _, step := range planner.Successors(s, cat, "") {
		if step.Action == a {
			return step.State
		}
	}
	return s
}
