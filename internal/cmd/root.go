package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version     VersionCmd     `cmd:"" help:"Print version."`
	Config      ConfigCmd      `cmd:"" help:"Manage configuration."`
	Login       LoginCmd       `cmd:"" help:"Sign in with email and password."`
	Register    RegisterCmd    `cmd:"" help:"Create an account."`
	GoogleLogin GoogleLoginCmd `cmd:"" name:"google-login" help:"Sign in with a Google OAuth result."`
	Logout      LogoutCmd      `cmd:"" help:"Sign out and clear the stored session."`
	Whoami      WhoamiCmd      `cmd:"" help:"Show the signed-in user."`
	Jobs        JobsCmd        `cmd:"" help:"Browse and search job listings."`
	Companies   CompaniesCmd   `cmd:"" help:"Browse companies."`
	Saved       SavedCmd       `cmd:"" help:"Manage saved jobs."`
	PostJob     PostJobCmd     `cmd:"" name:"post-job" help:"Post a job listing."`
	Upgrade     UpgradeCmd     `cmd:"" help:"Upgrade to FluffyJobs Pro."`
}

func NewCLI() *CLI {
	return &CLI{}
}
