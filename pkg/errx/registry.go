package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeCLI        = "70000"
	CodeConfig     = "71000"
	CodeRegistry   = "72000"
	CodeImageStore = "73000"
	CodeExec       = "74000"
)

const (
	DescCLI        = "CLI/argument error"
	DescConfig     = "Configuration error"
	DescRegistry   = "Registry error"
	DescImageStore = "Image store error"
	DescExec       = "Process execution error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeConfig, Description: DescConfig},
	{Code: CodeRegistry, Description: DescRegistry},
	{Code: CodeImageStore, Description: DescImageStore},
	{Code: CodeExec, Description: DescExec},
}

var registryMap = func() map[string]string {
	m := make(map[string]string, len(registryEntries))
	for _, entry := range registryEntries {
		m[entry.Code] = entry.Description
	}
	return m
}()

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
