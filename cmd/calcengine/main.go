package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/pocketwave/calcengine"
)

const historyFile = ".calcengine_history"

// rcConfig is the optional rc file (~/.calcengine.yaml). Flags override it.
type rcConfig struct {
	Backend   string `yaml:"backend"`
	Mode      string `yaml:"mode"`
	Precision int    `yaml:"precision"`
	Unit      string `yaml:"unit"`
	Steps     bool   `yaml:"steps"`
}

func main() {
	log.SetFlags(0)
	var (
		rcPath  string
		backend string
		mode    string
		prec    int
		unit    string
		steps   bool
	)
	flag.StringVar(&rcPath, "rc", "", "config file (default ~/.calcengine.yaml if present)")
	flag.StringVar(&backend, "backend", "", "numeric backend: float64 or fixed7")
	flag.StringVar(&mode, "mode", "", "arithmetic mode: normal, truncate, or round")
	flag.IntVar(&prec, "prec", -1, "policy precision (0..10)")
	flag.StringVar(&unit, "unit", "", "precision unit: places or digits")
	flag.BoolVar(&steps, "steps", false, "print the step trace after each result")
	flag.Parse()

	cfg := loadConfig(rcPath)
	if backend != "" {
		cfg.Backend = backend
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if prec >= 0 {
		cfg.Precision = prec
	}
	if unit != "" {
		cfg.Unit = unit
	}
	if steps {
		cfg.Steps = true
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			evalLine(eng, arg, cfg.Steps)
		}
		return
	}
	repl(eng, cfg.Steps)
}

func loadConfig(path string) rcConfig {
	var cfg rcConfig
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg
		}
		path = filepath.Join(home, ".calcengine.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			log.Fatal(err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	return cfg
}

func buildEngine(cfg rcConfig) (*calcengine.Engine, error) {
	ar, err := backendOf(cfg.Backend)
	if err != nil {
		return nil, err
	}
	p, err := policyOf(cfg)
	if err != nil {
		return nil, err
	}
	return calcengine.New(calcengine.WithArith(ar), calcengine.WithPolicy(p)), nil
}

func backendOf(name string) (calcengine.Arith, error) {
	switch name {
	case "", "float64":
		return calcengine.Float64(), nil
	case "fixed7":
		return calcengine.Fixed7(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func policyOf(cfg rcConfig) (calcengine.Policy, error) {
	var p calcengine.Policy
	switch cfg.Mode {
	case "", "normal":
	case "truncate", "trunc":
		p.Mode = calcengine.Truncate
	case "round":
		p.Mode = calcengine.Round
	default:
		return p, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	switch cfg.Unit {
	case "", "places":
	case "digits", "sig":
		p.Unit = calcengine.SignificantDigits
	default:
		return p, fmt.Errorf("unknown unit %q", cfg.Unit)
	}
	p.Precision = cfg.Precision
	return p, nil
}

func repl(eng *calcengine.Engine, steps bool) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			return
		}
		line.WriteHistory(f)
		f.Close()
	}()

	fmt.Printf("calcengine (%s backend), :help for commands, Ctrl+D exits\n", eng.Arith().Name())
	for {
		input, err := line.Prompt("= ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			log.Fatal(err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if strings.HasPrefix(input, ":") {
			if quit := command(&eng, input, &steps); quit {
				return
			}
			continue
		}
		evalLine(eng, input, steps)
	}
}

func evalLine(eng *calcengine.Engine, input string, steps bool) {
	r, err := eng.Evaluate(input)
	if err != nil {
		log.Println(err)
		return
	}
	fmt.Println(r.Text)
	if steps {
		for i, s := range r.Steps {
			fmt.Printf("  %2d. %s\n", i+1, s)
		}
	}
}

// command handles one colon command. Swapping the backend replaces the
// engine behind engp, which clears the variable table.
func command(engp **calcengine.Engine, input string, steps *bool) (quit bool) {
	eng := *engp
	fields := strings.Fields(input)
	p := eng.Policy()
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":backend":
		if len(fields) < 2 {
			fmt.Println("backend:", eng.Arith().Name())
			return false
		}
		ar, err := backendOf(fields[1])
		if err != nil {
			log.Println(err)
			return false
		}
		if ar.Name() == eng.Arith().Name() {
			fmt.Println("backend:", ar.Name())
			return false
		}
		*engp = calcengine.New(calcengine.WithArith(ar), calcengine.WithPolicy(p))
		fmt.Printf("backend: %s (variables cleared)\n", ar.Name())
	case ":mode":
		if len(fields) < 2 {
			p = p.CycleMode()
		} else {
			switch fields[1] {
			case "normal":
				p.Mode = calcengine.Normal
			case "truncate", "trunc":
				p.Mode = calcengine.Truncate
			case "round":
				p.Mode = calcengine.Round
			default:
				log.Printf("unknown mode %q", fields[1])
				return false
			}
		}
		eng.SetPolicy(p)
		fmt.Println(describePolicy(p))
	case ":unit":
		p = p.ToggleUnit()
		eng.SetPolicy(p)
		fmt.Println(describePolicy(p))
	case ":prec":
		if len(fields) < 2 {
			fmt.Println(describePolicy(p))
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 || n > calcengine.MaxPrecision {
			log.Printf("precision must be 0..%d", calcengine.MaxPrecision)
			return false
		}
		p.Precision = n
		eng.SetPolicy(p)
		fmt.Println(describePolicy(p))
	case ":set":
		if len(fields) < 3 {
			log.Println("usage: :set name value")
			return false
		}
		v, err := eng.Eval(fields[2])
		if err != nil {
			log.Println(err)
			return false
		}
		if !eng.SetVariable(strings.ToLower(fields[1]), v) {
			log.Println("variable table full")
			return false
		}
		fmt.Printf("%s = %s\n", strings.ToLower(fields[1]), eng.FormatReal(v))
	case ":vars":
		for _, name := range eng.Variables() {
			v, _ := eng.GetVariable(name)
			fmt.Printf("%s = %s\n", name, eng.FormatReal(v))
		}
	case ":steps":
		*steps = !*steps
		fmt.Println("steps:", *steps)
	default:
		log.Printf("unknown command %q (:help for help)", fields[0])
	}
	return false
}

func describePolicy(p calcengine.Policy) string {
	if p.Mode == calcengine.Normal {
		return "policy: normal"
	}
	return fmt.Sprintf("policy: %s to %d %s", p.Mode, p.Precision, p.Unit)
}

const helpText = `commands:
  :backend [float64|fixed7]      show or switch the numeric backend
  :mode [normal|truncate|round]  cycle or set the arithmetic mode
  :unit                          toggle places <-> digits
  :prec N                        set policy precision (0..10)
  :set name value                define a variable
  :vars                          list variables
  :steps                         toggle the step trace
  :quit                          exit
`
