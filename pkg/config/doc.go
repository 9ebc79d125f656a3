// Package config loads the generator configuration.
//
// # Overview
//
// Settings come from a YAML file, then from UIDOCS_* environment variables.
// A .env file next to the YAML file is loaded before the environment is read.
//
// # Configuration File
//
//	title: UI Grid
//	sourceDir: .
//	outputDir: docs
//	html5Mode: false
//	linkPrefix: "#!"
//	highlightCodeFences: true
//	editLink: https://github.com/angular-ui/ui-grid/edit/master/{file}
//	sourceLink: https://github.com/angular-ui/ui-grid/blob/master/{file}#L{codeline}
//	errorFile: errors.json
//	metricsFile: uidocs.prom
//	storage:
//	  type: filesystem  # filesystem, s3, memory
//	  bucket: ui-grid-docs
//	  prefix: v3
//	log:
//	  level: info   # debug, info, warn, error
//	  format: text  # text, json
//	sections:
//	  - name: api
//	    title: API
//	    api: true
//	    paths: ["src/**/*.js"]
//	  - name: tutorial
//	    paths: ["misc/tutorial/*.ngdoc"]
//
// # Environment Overrides
//
//	UIDOCS_OUTPUT_DIR="site"
//	UIDOCS_HTML5_MODE="true"
//	UIDOCS_SOURCE_CACHE_SIZE="64"
//	UIDOCS_LOG_LEVEL="debug"
//	UIDOCS_STORAGE_TYPE="s3"
//	UIDOCS_S3_BUCKET="ui-grid-docs"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig("uidocs.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	opts.EditLink = cfg.EditLinkFunc()
package config
