package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     cfg, err := config.Load("", map[string]interface{}{"data": "./instagram-export"})
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with a custom config file:
//
//     cfg, err := config.Load("/path/to/config.yaml", nil)
//
// 3. Load with command line flags (only the ones the user changed):
//
//     flags := map[string]interface{}{
//         "data":    "./instagram-export",
//         "out":     "./results",
//         "format":  "csv",
//         "verbose": true,
//     }
//     cfg, err := config.Load("", flags)
//
// 4. Configuration file format (YAML):
//
//     input:
//       data_directory: ./instagram-export
//       match_mode: permissive   # or strict
//     output:
//       directory: ./results
//       format: txt              # or csv
//     report:
//       verbose: false
//       preview_limit: 10
//     logging:
//       level: warn
//       file: ""
//
// 5. Environment variables (mirror the CLI flags):
//
//     IGFOLLOWCHECK_DATA=./instagram-export
//     IGFOLLOWCHECK_OUT=./results
//     IGFOLLOWCHECK_FORMAT=csv
//     IGFOLLOWCHECK_VERBOSE=true
//     IGFOLLOWCHECK_LOG_LEVEL=debug
