// Package commands defines the temporal CLI.
//
// Commands
//
//   - add               Add a duration to a zoned date-time
//   - since, until      Difference between two zoned date-times
//   - resolve           Find the instant of a wall-clock time in a time zone
//   - zone info         Print the contents of a TZif file
//   - zone diff         Compare two TZif files
//   - zone compile      Compile a zone from tz source into a TZif file
//   - zone build        Compile a tzdata release archive into a zoneinfo directory
//   - zone transitions  List the offset changes of a zone
//
// # Implementation
//
// The root command loads the YAML configuration, applies flag overrides and builds the logger and the zone
// loader before any subcommand runs. Instants are given and printed as nanoseconds since the Unix epoch.
package commands
