package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tucker-bin/noctua-forest-sub005/data"
)

// fileRule is a positional rule as written in profiles.yaml.
type fileRule struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	After string `yaml:"after"`
}

// fileProfile mirrors one entry of profiles.yaml.
type fileProfile struct {
	Code           string            `yaml:"code"`
	Name           string            `yaml:"name"`
	Script         string            `yaml:"script"`
	Dictionary     bool              `yaml:"dictionary"`
	RhymeRule      string            `yaml:"rhyme_rule"`
	Vowels         []string          `yaml:"vowels"`
	Consonants     []string          `yaml:"consonants"`
	StressMarkers  []string          `yaml:"stress_markers"`
	Diphthongs     []string          `yaml:"diphthongs"`
	CommonClusters []string          `yaml:"common_clusters"`
	SilentE        map[string]string `yaml:"silent_e"`
	Initial        []fileRule        `yaml:"initial"`
	Final          []fileRule        `yaml:"final"`
	Rules          [][]string        `yaml:"rules"`
}

type profileFile struct {
	Profiles []fileProfile `yaml:"profiles"`
}

type registryData struct {
	byCode map[string]*Profile
	codes  []string
}

var registry registryData

func init() {
	r, err := parse(data.Profiles)
	if err != nil {
		panic(err)
	}
	if _, ok := r.byCode[DefaultCode]; !ok {
		panic("profile: embedded data has no " + DefaultCode + " profile")
	}
	registry = r
}

// parse decodes and compiles a profiles document.
func parse(src []byte) (registryData, error) {
	var f profileFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return registryData{}, fmt.Errorf("profile: decode: %w", err)
	}
	if len(f.Profiles) == 0 {
		return registryData{}, errors.New("profile: no profiles defined")
	}

	r := registryData{byCode: make(map[string]*Profile, len(f.Profiles))}
	for i := range f.Profiles {
		p, err := compile(&f.Profiles[i])
		if err != nil {
			return registryData{}, err
		}
		if _, dup := r.byCode[p.Code]; dup {
			return registryData{}, fmt.Errorf("profile: duplicate code %q", p.Code)
		}
		r.byCode[p.Code] = p
		r.codes = append(r.codes, p.Code)
	}
	slices.Sort(r.codes)
	return r, nil
}

// compile validates fp and builds its lookup tables.
func compile(fp *fileProfile) (*Profile, error) {
	code := strings.ToLower(strings.TrimSpace(fp.Code))
	if code == "" {
		return nil, errors.New("profile: empty code")
	}
	if len(fp.Vowels) == 0 {
		return nil, fmt.Errorf("profile %s: no vowels", code)
	}

	rule := LastStressedVowel
	if fp.RhymeRule != "" {
		var ok bool
		rule, ok = rhymeRuleFromName[fp.RhymeRule]
		if !ok {
			return nil, fmt.Errorf("profile %s: unknown rhyme rule %q", code, fp.RhymeRule)
		}
	}

	p := &Profile{
		Code:           code,
		Name:           fp.Name,
		Script:         fp.Script,
		Vowels:         fp.Vowels,
		Consonants:     fp.Consonants,
		StressMarkers:  fp.StressMarkers,
		Diphthongs:     fp.Diphthongs,
		CommonClusters: fp.CommonClusters,
		RhymeRule:      rule,
		SilentE:        fp.SilentE,
		Dictionary:     fp.Dictionary,
		tag:            language.Make(code),
		vowels:         runeSet(fp.Vowels),
		consonants:     runeSet(fp.Consonants),
	}

	for _, fr := range fp.Initial {
		if fr.From == "" {
			return nil, fmt.Errorf("profile %s: initial rule with empty pattern", code)
		}
		p.initial = append(p.initial, Rule{From: fr.From, To: fr.To, Position: Initial})
	}
	for _, fr := range fp.Final {
		if fr.From == "" {
			return nil, fmt.Errorf("profile %s: final rule with empty pattern", code)
		}
		if fr.After != "" && fr.After != "consonant" {
			return nil, fmt.Errorf("profile %s: unknown final rule context %q", code, fr.After)
		}
		p.final = append(p.final, Rule{From: fr.From, To: fr.To, Position: Final, AfterConsonant: fr.After == "consonant"})
	}

	pairs := make([]string, 0, 2*len(fp.Rules))
	rules := make([]Rule, 0, len(fp.Rules))
	for i, pair := range fp.Rules {
		if len(pair) != 2 || pair[0] == "" {
			return nil, fmt.Errorf("profile %s: rule %d: want [from, to], got %q", code, i, pair)
		}
		pairs = append(pairs, pair[0], pair[1])
		rules = append(rules, Rule{From: pair[0], To: pair[1]})
	}
	if len(pairs) > 0 {
		p.replacer = strings.NewReplacer(pairs...)
	}
	p.Rules = append(append(slices.Clone(p.initial), p.final...), rules...)

	p.nuclei = slices.Clone(fp.Diphthongs)
	slices.SortStableFunc(p.nuclei, func(a, b string) int { return len(b) - len(a) })
	for _, n := range p.nuclei {
		for _, r := range n {
			if !p.vowels[r] {
				return nil, fmt.Errorf("profile %s: diphthong %q contains non-vowel %q", code, n, r)
			}
		}
	}
	return p, nil
}

func runeSet(symbols []string) map[rune]bool {
	m := make(map[rune]bool, len(symbols))
	for _, s := range symbols {
		for _, r := range s {
			m[r] = true
		}
	}
	return m
}
