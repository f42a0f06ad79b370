/*
go-speedcam measures vehicle speed from video by tracking car bounding
boxes across frames and timing how long the rightmost edge of each car
takes to travel between two fixed measurement lines of known real-world
distance.

The core engine consumes per-frame detection lists produced by an
external object detector and turns them into persistent vehicle tracks,
line-crossing events, and validated speed measurements.  It never runs
inference itself.  A gocv DNN based detector collaborator is provided in
the detect subpackage for running the whole thing end to end.

See example code and usage in the examples subdirectory.
*/
package speedcam
