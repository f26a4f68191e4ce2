// Package engine drives a container engine through its CLI.
//
// An [Engine] wraps a configurable command name (docker by default) and
// exposes the five operations the build pipeline needs: image build,
// container run, filesystem export, container removal, and image removal.
// Every operation is a blocking subprocess invocation; output is forwarded
// to the logger and the tail of the error stream is attached to failures.
//
// Export is the one streaming operation: it returns an [ExportStream] whose
// bytes are consumed concurrently with the subprocess producing them.
//
// Example usage:
//
//	eng := engine.New("docker")
//
//	if err := eng.BuildImage(ctx, contextDir, image, false); err != nil {
//	    return err
//	}
//
//	if err := eng.RunContainer(ctx, image, container, false); err != nil {
//	    return err
//	}
//
//	stream, err := eng.Export(ctx, container)
//	if err != nil {
//	    return err
//	}
//	// ... consume stream ...
//	if err := stream.Close(); err != nil {
//	    return err
//	}
package engine
