// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_settings.toml
//	fixtures/invalid_settings.toml
//	fixtures/station.prisma   // edit script touching every section
//	fixtures/rejected.prisma  // edit script with rejected values
//
// Settings fixtures go through config.Load, so they see the same
// validation as the CLI:
//
//	s, err := testutil.LoadSettingsFixture(t.TempDir(), "valid_settings.toml")
//	cmds, err := testutil.StationScript()
//
// # Test Environment
//
// NewTestEnv installs an app.App with recorded notifications and a
// temporary output directory as app.Default, and restores the previous
// default when the test ends:
//
//	env := testutil.NewTestEnv(t)
//	// run a command ...
//	if !env.OutputExists() {
//	    t.Fatal("document not written")
//	}
package testutil
