package constants

const (
	Version        = `0.1.0`
	AppName        = `lazyblog`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `/.lazyblog/`
	EnvPrefix      = `LAZYBLOG`

	DefaultContentDir    = `content/posts`
	DefaultExtension     = `.md`
	DefaultRoutePrefix   = `/posts/`
	DefaultLinkMap       = `public/link-map.json`
	DefaultSummaryLength = 150
	DefaultConcurrency   = 8
	DefaultSnippetWindow = 40

	SummaryEllipsis = `...`
)
