package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/walletkeep/walletkeep/cmds"
	"github.com/walletkeep/walletkeep/utils"
)

const envPrefix = "WKEEP"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: utils.Version,
	Use:     "walletkeep",
	Short:   "Wallet persistence vault cli tool",
	Long: `
Wallet persistence vault cli tool
	`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := cmds.ParseLoggingArgs(rootFlags.logging); err != nil {
			log.Println(err)
		}
		readBoundRootFlags()
	},
}

// Execute root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootFlags are the common flags
type RootFlags struct {
	cfgFile     string
	logging     string
	storagePath string
	storageName string
	sealKeyFile string
}

var rootFlags = RootFlags{}

var rootEnvs = map[string]string{
	"config":       "CONFIG",
	"logging":      "LOGGING",
	"storage-path": "STORAGE_PATH",
	"storage-name": "STORAGE_NAME",
	"seal-key":     "SEAL_KEY",
}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.cfgFile, "config", "",
		flagInfo("configuration file", rootEnvs["config"]))
	flags.StringVar(&rootFlags.logging, "logging", "-logtostderr=true -v=0",
		flagInfo("logging startup arguments", rootEnvs["logging"]))
	flags.StringVar(&rootFlags.storagePath, "storage-path", utils.DataDir(),
		flagInfo("directory of the vault file", rootEnvs["storage-path"]))
	flags.StringVar(&rootFlags.storageName, "storage-name", "wallet",
		flagInfo("name of the vault file without extension", rootEnvs["storage-name"]))
	flags.StringVar(&rootFlags.sealKeyFile, "seal-key", "",
		flagInfo("file holding the at-rest encryption keyset", rootEnvs["seal-key"]))

	try.To(bindFlags(flags,
		"logging", "storage-path", "storage-name", "seal-key"))
	try.To(bindEnvs(rootEnvs))
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	readConfigFile()
	readBoundRootFlags()
}

func readBoundRootFlags() {
	rootFlags.logging = viper.GetString("logging")
	rootFlags.storagePath = viper.GetString("storage-path")
	rootFlags.storageName = viper.GetString("storage-name")
	rootFlags.sealKeyFile = viper.GetString("seal-key")
}

func readConfigFile() {
	cfgEnv := os.Getenv(envPrefix + "_CONFIG")
	if rootFlags.cfgFile == "" {
		rootFlags.cfgFile = cfgEnv
	}
	if rootFlags.cfgFile != "" {
		viper.SetConfigFile(rootFlags.cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

func bindFlags(flags *pflag.FlagSet, names ...string) (err error) {
	defer err2.Handle(&err)

	for _, name := range names {
		try.To(viper.BindPFlag(name, flags.Lookup(name)))
	}
	return nil
}

func bindEnvs(envMap map[string]string) (err error) {
	defer err2.Handle(&err)

	for flagKey, envName := range envMap {
		try.To(viper.BindEnv(flagKey, envPrefix+"_"+envName))
	}
	return nil
}

func flagInfo(info, envName string) string {
	return info + ", " + envPrefix + "_" + envName
}

// baseCmd builds the shared command fields from the bound root flags.
func baseCmd() cmds.Cmd {
	return cmds.Cmd{
		StoragePath: rootFlags.storagePath,
		StorageName: rootFlags.storageName,
		SealKeyFile: rootFlags.sealKeyFile,
	}
}

func runCommand(c cmds.Command) (err error) {
	defer err2.Handle(&err)

	try.To(c.Validate())
	try.To1(c.Exec(os.Stdout))
	return nil
}
