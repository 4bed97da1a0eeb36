// Package sink owns the process-wide log output configuration.
//
// A Configurator holds exactly one active console sink. Configure builds a
// new sink from options, swaps it in atomically and closes the previous
// one, so the last call always wins and no record is ever written twice:
//
//	c := sink.New()
//	if err := c.Configure(sink.WithJSONFormat(true)); err != nil {
//	    return err
//	}
//	log := logger.NewBuilder().WithHandler(c).Build()
//
// JSON mode writes one compact object per line to stdout and drops records
// below info. Text mode writes the colorized developer template to stderr
// and lets every level through.
//
// Independently of the mode, records on the channels boto3, botocore,
// s3transfer and urllib3 (and their dotted children such as
// botocore.credentials) are dropped unless they are fatal. The list is
// fixed when the Configurator is created.
//
// Configure and Close are serialized; Handle and Enabled read the active
// sink through an atomic pointer and never block on reconfiguration.
package sink
