package config

import (
	"fmt"
	"strings"

	"github.com/example/go-alignprep/internal/corpus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Corpus   CorpusConfig `mapstructure:"corpus"`
	Vocab    VocabConfig  `mapstructure:"vocab"`
	Output   OutputConfig `mapstructure:"output"`
	LogLevel string       `mapstructure:"log_level"`
}

// CorpusConfig names the XML elements of the corpus variant being loaded.
type CorpusConfig struct {
	SentenceTag string `mapstructure:"sentence_tag"`
	SourceTag   string `mapstructure:"source_tag"`
	TargetTag   string `mapstructure:"target_tag"`
	SureTag     string `mapstructure:"sure_tag"`
	PossibleTag string `mapstructure:"possible_tag"`
}

type VocabConfig struct {
	// FreqCutoff caps each vocabulary at the N most frequent tokens.
	// Zero or negative means no limit.
	FreqCutoff int `mapstructure:"freq_cutoff"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			SentenceTag: "s",
			SourceTag:   "english",
			TargetTag:   "czech",
			SureTag:     "sure",
			PossibleTag: "possible",
		},
		Vocab: VocabConfig{
			FreqCutoff: 0,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("corpus-sentence-tag", defaults.Corpus.SentenceTag, "XML element holding one aligned sentence")
	fs.String("corpus-source-tag", defaults.Corpus.SourceTag, "XML element holding the source-language text")
	fs.String("corpus-target-tag", defaults.Corpus.TargetTag, "XML element holding the target-language text")
	fs.String("corpus-sure-tag", defaults.Corpus.SureTag, "XML element holding sure alignment links")
	fs.String("corpus-possible-tag", defaults.Corpus.PossibleTag, "XML element holding possible alignment links")
	fs.Int("vocab-freq-cutoff", defaults.Vocab.FreqCutoff, "Keep only the N most frequent tokens per language (0 = no limit)")
	fs.String("output-dir", defaults.Output.Dir, "Directory for generated vocabulary and sentence files")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("ALIGNPREP")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("alignprep")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Schema converts the corpus tag configuration into a loader schema.
func (c Config) Schema() corpus.Schema {
	return corpus.Schema{
		Sentence: c.Corpus.SentenceTag,
		Source:   c.Corpus.SourceTag,
		Target:   c.Corpus.TargetTag,
		Sure:     c.Corpus.SureTag,
		Possible: c.Corpus.PossibleTag,
	}
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("corpus.sentence_tag", c.Corpus.SentenceTag)
	v.SetDefault("corpus.source_tag", c.Corpus.SourceTag)
	v.SetDefault("corpus.target_tag", c.Corpus.TargetTag)
	v.SetDefault("corpus.sure_tag", c.Corpus.SureTag)
	v.SetDefault("corpus.possible_tag", c.Corpus.PossibleTag)
	v.SetDefault("vocab.freq_cutoff", c.Vocab.FreqCutoff)
	v.SetDefault("output.dir", c.Output.Dir)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("corpus.sentence_tag", "corpus-sentence-tag")
	v.RegisterAlias("corpus.source_tag", "corpus-source-tag")
	v.RegisterAlias("corpus.target_tag", "corpus-target-tag")
	v.RegisterAlias("corpus.sure_tag", "corpus-sure-tag")
	v.RegisterAlias("corpus.possible_tag", "corpus-possible-tag")
	v.RegisterAlias("vocab.freq_cutoff", "vocab-freq-cutoff")
	v.RegisterAlias("output.dir", "output-dir")
	v.RegisterAlias("log_level", "log-level")
}
