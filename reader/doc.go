// Package reader loads Apache Parquet files into in-memory tables.
//
// It uses the parquet-go library to read rows and returns them as a
// table.Frame whose columns follow the file's schema order, ready to be
// evaluated by the condition package.
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	frame, err := reader.ReadFile("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Multi-file Operations
//
// Reading multiple files using glob patterns:
//
//	frame, err := reader.ReadPattern("data/**/*.parquet")
//
// Rows read through a pattern carry a "_file" column with their source path.
//
// # Schema
//
// Inspecting the columns a condition may reference:
//
//	infos, err := reader.ReadColumnInfo("data.parquet")
//	for _, info := range infos {
//	    fmt.Println(info.Name, info.Type)
//	}
package reader
