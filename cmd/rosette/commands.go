package main

import (
	"github.com/spf13/cobra"

	"github.com/rosette-api/rosette-go/client"
)

// documentFlags are the inputs shared by every document operation.
type documentFlags struct {
	content    string
	contentURI string
	language   string
	genre      string
}

func (f *documentFlags) register(cmd *cobra.Command, defaultContent string) {
	cmd.Flags().StringVar(&f.content, "content", defaultContent, "Text to analyse")
	cmd.Flags().StringVar(&f.contentURI, "content-uri", "", "URI of the document to analyse (instead of --content)")
	cmd.Flags().StringVar(&f.language, "language", "", "ISO 639-3 language code (optional)")
	cmd.Flags().StringVar(&f.genre, "genre", "", "Document genre (optional)")
}

func (f *documentFlags) parameters() *client.Parameters {
	p := client.NewParameters()
	if f.contentURI != "" {
		p.SetContentURI(f.contentURI)
	} else if f.content != "" {
		p.SetContent(f.content)
	}
	if f.language != "" {
		p.SetLanguage(f.language)
	}
	if f.genre != "" {
		p.SetGenre(f.genre)
	}
	return p
}

func newDocumentCmd(g *globalFlags, use, short string, op client.Operation) *cobra.Command {
	var df documentFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, op, df.parameters())
		},
	}
	df.register(cmd, "")
	return cmd
}

func newMorphologyCmd(g *globalFlags) *cobra.Command {
	var (
		df     documentFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "morphology",
		Short: "Morphological analysis; defaults to de-compounding a German word",
		RunE: func(cmd *cobra.Command, args []string) error {
			op := client.Operation("morphology/" + output)
			return run(cmd, g, op, df.parameters())
		},
	}
	df.register(cmd, "Rechtsschutzversicherungsgesellschaften")
	cmd.Flags().StringVar(&output, "output", string(client.MorphologyCompoundComponents),
		"complete|lemmas|parts-of-speech|compound-components|han-readings")
	return cmd
}

func newNameTranslationCmd(g *globalFlags) *cobra.Command {
	var req client.NameTranslationRequest

	cmd := &cobra.Command{
		Use:   "name-translation",
		Short: "Translate a name into another language and script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, client.OpNameTranslation, req.Parameters())
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "Name to translate (required)")
	f.StringVar(&req.TargetLanguage, "target-language", "eng", "ISO 639-3 target language")
	f.StringVar(&req.EntityType, "entity-type", "", "PERSON, LOCATION or ORGANIZATION")
	f.StringVar(&req.SourceScript, "source-script", "", "ISO 15924 script of the name")
	f.StringVar(&req.SourceLanguageOfOrigin, "source-language-of-origin", "", "Language the name originates from")
	f.StringVar(&req.SourceLanguageOfUse, "source-language-of-use", "", "Language the name is used in")
	f.StringVar(&req.TargetScript, "target-script", "", "ISO 15924 target script")
	f.StringVar(&req.TargetScheme, "target-scheme", "", "Transliteration scheme")
	return cmd
}

func newNameSimilarityCmd(g *globalFlags) *cobra.Command {
	var req client.NameSimilarityRequest

	cmd := &cobra.Command{
		Use:   "name-similarity",
		Short: "Score how likely two names refer to the same entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name2.EntityType = req.Name1.EntityType
			return run(cmd, g, client.OpNameSimilarity, req.Parameters())
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name1.Text, "name1", "", "First name (required)")
	f.StringVar(&req.Name1.Language, "language1", "", "Language of the first name")
	f.StringVar(&req.Name2.Text, "name2", "", "Second name (required)")
	f.StringVar(&req.Name2.Language, "language2", "", "Language of the second name")
	f.StringVar(&req.Name1.EntityType, "entity-type", "", "PERSON, LOCATION or ORGANIZATION")
	return cmd
}

func newNoArgCmd(g *globalFlags, use, short string, op client.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, op, nil)
		},
	}
}
